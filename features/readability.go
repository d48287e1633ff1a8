package features

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
)

// DefaultMTLDThreshold is the factor size threshold used for MTLD.
const DefaultMTLDThreshold = 0.72

// ReadabilityService computes readability formulas over raw text.
type ReadabilityService interface {
	AutomatedReadabilityIndex(ctx context.Context, text string) (float64, error)
	ColemanLiauIndex(ctx context.Context, text string) (float64, error)
	DaleChallScore(ctx context.Context, text string) (float64, error)
	DifficultWords(ctx context.Context, text string) (float64, error)
	FleschKincaidGrade(ctx context.Context, text string) (float64, error)
	FleschReadingEase(ctx context.Context, text string) (float64, error)
	GunningFog(ctx context.Context, text string) (float64, error)
	LinsearWrite(ctx context.Context, text string) (float64, error)
	SMOGIndex(ctx context.Context, text string) (float64, error)
	// TextStandard returns a grade descriptor such as "9th and 10th grade".
	TextStandard(ctx context.Context, text string) (string, error)
}

// DiversityService computes a lexical diversity measure. Its behaviour on
// text without letters is undefined, callers guard against that.
type DiversityService interface {
	MTLD(ctx context.Context, text string, threshold float64) (float64, error)
}

// ReadabilityScores is the readability part of a feature record.
type ReadabilityScores struct {
	AutomatedReadabilityIndex float64
	ColemanLiauIndex          float64
	DaleChallScore            float64
	DifficultWords            float64
	FleschKincaidGrade        float64
	FleschReadingEase         float64
	GunningFog                float64
	LinsearWrite              float64
	SMOGIndex                 float64
	TextStandard              float64
	// Readability is the mean of ARI, Coleman-Liau, Flesch-Kincaid and
	// Gunning-Fog.
	Readability      float64
	LexicalDiversity float64
}

func NaNReadability() ReadabilityScores {
	nan := math.NaN()
	return ReadabilityScores{nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan, nan}
}

type ReadabilityExtractor struct {
	Metrics   ReadabilityService
	Diversity DiversityService
	// Threshold defaults to DefaultMTLDThreshold when zero.
	Threshold float64
	// Timeout bounds all collaborator calls for one segment. Zero means no
	// limit beyond the caller's context.
	Timeout time.Duration
	Log     *logrus.Entry
}

// A minus sign only counts at the start of the descriptor or after
// whitespace, so "9th-10th" reads as a range.
var gradeRe = regexp.MustCompile(`(?:^|\s)(-\d+)|(\d+)`)

// ParseTextStandard averages the integers embedded in a grade descriptor.
// A descriptor without integers gives NaN.
func ParseTextStandard(s string) float64 {
	matches := gradeRe.FindAllStringSubmatch(s, -1)
	xs := make([]float64, 0, len(matches))
	for _, m := range matches {
		num := m[1]
		if num == "" {
			num = m[2]
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		xs = append(xs, float64(v))
	}
	mean, _ := meanStd(xs)
	return mean
}

func hasLetter(text string) bool {
	return strings.IndexFunc(text, unicode.IsLetter) >= 0
}

func checkText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrDegenerateInput
	}
	return nil
}

// Extract scores one segment. Collaborator failures turn into NaN for the
// affected field and are logged; nothing is returned as an error.
func (e *ReadabilityExtractor) Extract(ctx context.Context, text string) ReadabilityScores {
	out := NaNReadability()
	out.LexicalDiversity = 0
	if err := checkText(text); err != nil {
		return out
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	if e.Metrics != nil {
		m := e.Metrics
		out.AutomatedReadabilityIndex = e.score(ctx, "automated_readability_index", text, m.AutomatedReadabilityIndex)
		out.ColemanLiauIndex = e.score(ctx, "coleman_liau_index", text, m.ColemanLiauIndex)
		out.DaleChallScore = e.score(ctx, "dale_chall_score", text, m.DaleChallScore)
		out.DifficultWords = e.score(ctx, "n_difficult_words", text, m.DifficultWords)
		out.FleschKincaidGrade = e.score(ctx, "flesch_kincaid_grade", text, m.FleschKincaidGrade)
		out.FleschReadingEase = e.score(ctx, "flesch_reading_ease", text, m.FleschReadingEase)
		out.GunningFog = e.score(ctx, "gunning_fog", text, m.GunningFog)
		out.LinsearWrite = e.score(ctx, "linsear_write", text, m.LinsearWrite)
		out.SMOGIndex = e.score(ctx, "smog_index", text, m.SMOGIndex)

		if std, err := m.TextStandard(ctx, text); err != nil {
			e.warn(err, "text_standard")
		} else {
			out.TextStandard = ParseTextStandard(std)
		}

		out.Readability, _ = meanStd([]float64{
			out.AutomatedReadabilityIndex,
			out.ColemanLiauIndex,
			out.FleschKincaidGrade,
			out.GunningFog,
		})
	}

	out.LexicalDiversity = e.lexicalDiversity(ctx, text)
	return out
}

func (e *ReadabilityExtractor) lexicalDiversity(ctx context.Context, text string) float64 {
	if !hasLetter(text) {
		return 0
	}
	if e.Diversity == nil {
		return math.NaN()
	}
	th := e.Threshold
	if th == 0 {
		th = DefaultMTLDThreshold
	}
	v, err := e.Diversity.MTLD(ctx, text, th)
	if err != nil {
		e.warn(err, "lexical_diversity")
		return math.NaN()
	}
	return v
}

func (e *ReadabilityExtractor) score(ctx context.Context, name, text string, fn func(context.Context, string) (float64, error)) float64 {
	v, err := fn(ctx, text)
	if err != nil {
		e.warn(err, name)
		return math.NaN()
	}
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func (e *ReadabilityExtractor) warn(err error, feature string) {
	if e.Log == nil {
		return
	}
	e.Log.WithError(err).WithField("feature", feature).Warn("readability metric failed")
}
