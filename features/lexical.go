package features

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dzenilee/presidential/doc"
)

const (
	ApplauseMarker  = "APPLAUSE"
	CrosstalkMarker = "CROSSTALK"
)

var (
	firstSingular = []string{"i", "my", "mine", "myself"}
	firstPlural   = []string{"we", "our", "ours", "ourselves"}
	second        = []string{"you", "your", "yours", "yourself", "yourselves"}
	third         = []string{
		"he", "his", "him", "himself",
		"she", "her", "hers", "herself",
		"they", "their", "theirs", "themselves",
	}

	negationWords = set("no", "not", "n't", "never", "nothing", "nobody", "none",
		"neither", "nor", "nowhere", "cannot")
	futureModals = set("will", "wo", "shall", "sha")
	futureWords  = set("tomorrow", "future", "soon", "later", "eventually",
		"someday", "upcoming", "forthcoming", "henceforth")
)

var pronounCategory = func() map[string]int {
	m := map[string]int{}
	for i, forms := range [][]string{firstSingular, firstPlural, second, third} {
		for _, f := range forms {
			m[f] = i
		}
	}
	return m
}()

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Pronouns holds per-person pronoun counts for one segment.
type Pronouns struct {
	FirstSingular int
	FirstPlural   int
	Second        int
	Third         int
}

// DeltaFirstPerson is the first person singular count minus the plural one.
func (p Pronouns) DeltaFirstPerson() int { return p.FirstSingular - p.FirstPlural }

// words splits text into lower-cased runs of letters and digits, so that a
// pronoun only matches as a whole word.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CountPronouns counts personal pronouns by person, case-insensitively.
func CountPronouns(text string) Pronouns {
	var counts [4]int
	for _, w := range words(text) {
		if c, ok := pronounCategory[w]; ok {
			counts[c]++
		}
	}
	return Pronouns{
		FirstSingular: counts[0],
		FirstPlural:   counts[1],
		Second:        counts[2],
		Third:         counts[3],
	}
}

func CountApplauses(text string) int  { return strings.Count(text, ApplauseMarker) }
func CountCrosstalks(text string) int { return strings.Count(text, CrosstalkMarker) }

// TitleForm upper-cases the first letter of name and lower-cases the rest,
// which is how surnames appear in running transcript text.
func TitleForm(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// Lexicon carries the name lists used for mention counting.
type Lexicon struct {
	// Candidates are the surnames of every known candidate.
	Candidates []string
	// Target is the surname of the distinguished opponent.
	Target string
	// ExcludeSelfMentions drops the speaker's own name from the opponent
	// mention sum. Off by default.
	ExcludeSelfMentions bool
}

// TargetMentions counts exact title-form mentions of the target surname.
func (l *Lexicon) TargetMentions(text string) int {
	name := TitleForm(l.Target)
	if name == "" {
		return 0
	}
	return strings.Count(text, name)
}

// OpponentMentions sums title-form mentions of every known candidate.
// The speaker is only skipped when ExcludeSelfMentions is set.
func (l *Lexicon) OpponentMentions(text, speaker string) int {
	n := 0
	for _, c := range l.Candidates {
		if l.ExcludeSelfMentions && speaker != "" && strings.EqualFold(c, speaker) {
			continue
		}
		name := TitleForm(c)
		if name == "" {
			continue
		}
		n += strings.Count(text, name)
	}
	return n
}

// CountNegations adds tokens labelled neg and tokens from the negation word
// list. A token that is both counts twice.
func CountNegations(d *doc.Document) int {
	n := 0
	for _, t := range d.Tokens {
		if t.Dep == doc.DepNeg {
			n++
		}
		if _, ok := negationWords[strings.ToLower(t.Text)]; ok {
			n++
		}
	}
	return n
}

// CountFutureMarkers counts future modals, "going to" complements and
// future time words.
func CountFutureMarkers(d *doc.Document) int {
	n := 0
	for _, t := range d.Tokens {
		lower := strings.ToLower(t.Text)
		if t.Tag == doc.TagModal {
			if _, ok := futureModals[lower]; ok {
				n++
			}
		}
		if t.Dep == doc.DepXComp {
			if head, ok := d.HeadOf(t); ok && strings.EqualFold(head.Lemma, "go") {
				n++
			}
		}
		if _, ok := futureWords[lower]; ok {
			n++
		}
	}
	return n
}

// Lexical is the lexical part of a feature record.
type Lexical struct {
	Applauses        float64
	Crosstalks       float64
	OpponentMentions float64
	TargetMentions   float64
	Person1Sg        float64
	Person1Pl        float64
	Person2          float64
	Person3          float64
	DeltaFirstPerson float64
	// Negations and FutureMarkers are NaN without a parsed document.
	Negations     float64
	FutureMarkers float64
}

// Extract computes lexical features. parsed may be nil, in which case only
// the text based counts are filled in.
func (l *Lexicon) Extract(text, speaker string, parsed *doc.Document) Lexical {
	p := CountPronouns(text)
	out := Lexical{
		Applauses:        float64(CountApplauses(text)),
		Crosstalks:       float64(CountCrosstalks(text)),
		OpponentMentions: float64(l.OpponentMentions(text, speaker)),
		TargetMentions:   float64(l.TargetMentions(text)),
		Person1Sg:        float64(p.FirstSingular),
		Person1Pl:        float64(p.FirstPlural),
		Person2:          float64(p.Second),
		Person3:          float64(p.Third),
		DeltaFirstPerson: float64(p.DeltaFirstPerson()),
		Negations:        math.NaN(),
		FutureMarkers:    math.NaN(),
	}
	if parsed != nil {
		out.Negations = float64(CountNegations(parsed))
		out.FutureMarkers = float64(CountFutureMarkers(parsed))
	}
	return out
}

func NaNLexical() Lexical {
	nan := math.NaN()
	return Lexical{nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan}
}
