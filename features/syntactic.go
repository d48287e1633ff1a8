package features

import (
	"math"

	"github.com/dzenilee/presidential/doc"
)

var embeddingDeps = set(doc.DepCComp, doc.DepXComp, doc.DepAdvCl, doc.DepDative)

// Syntactic is the parse-dependent part of a feature record.
type Syntactic struct {
	Tokens               float64
	Sentences            float64
	MeanSentLength       float64
	StdSentLength        float64
	WordsBeforeMainVerb  float64
	MeanClauseEmbeddings float64
}

func NaNSyntactic() Syntactic {
	nan := math.NaN()
	return Syntactic{nan, nan, nan, nan, nan, nan}
}

// ExtractSyntactic computes sentence statistics from a parsed document.
// A nil document yields NaN everywhere.
func ExtractSyntactic(d *doc.Document) Syntactic {
	if d == nil {
		return NaNSyntactic()
	}

	lengths := make([]float64, 0, len(d.Sentences))
	embeddings := make([]float64, 0, len(d.Sentences))
	distances := []float64{0}
	for _, s := range d.Sentences {
		toks := d.SentenceTokens(s)
		lengths = append(lengths, float64(countWords(toks)))
		embeddings = append(embeddings, float64(countEmbeddings(toks)))
		if dist, err := mainVerbDistance(toks); err == nil {
			distances = append(distances, float64(dist))
		}
	}

	mean, std := meanStd(lengths)
	embMean, _ := meanStd(embeddings)
	distMean, _ := meanStd(distances)
	tokens := 0
	if len(d.Sentences) > 0 {
		tokens = countWords(d.Tokens)
	}
	return Syntactic{
		Tokens:               float64(tokens),
		Sentences:            float64(len(d.Sentences)),
		MeanSentLength:       mean,
		StdSentLength:        std,
		WordsBeforeMainVerb:  distMean,
		MeanClauseEmbeddings: embMean,
	}
}

func countWords(toks []doc.Token) int {
	n := 0
	for _, t := range toks {
		if t.POS != doc.PosSpace {
			n++
		}
	}
	return n
}

func countEmbeddings(toks []doc.Token) int {
	n := 0
	for _, t := range toks {
		if _, ok := embeddingDeps[t.Dep]; ok {
			n++
		}
	}
	return n
}

// mainVerbDistance returns how many tokens precede the verbal root of a
// sentence.
func mainVerbDistance(toks []doc.Token) (int, error) {
	var root *doc.Token
	for i := range toks {
		if toks[i].Dep != doc.DepRoot {
			continue
		}
		if root != nil {
			return 0, ErrMissingRoot
		}
		root = &toks[i]
	}
	if root == nil {
		return 0, ErrMissingRoot
	}
	if root.POS != doc.PosVerb {
		return 0, ErrRootNotVerb
	}
	return root.Index - toks[0].Index, nil
}

// meanStd returns the mean and population standard deviation of xs, or NaN
// for both when xs is empty.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}
