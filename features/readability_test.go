package features

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeMetrics struct {
	value    float64
	standard string
	err      error
	calls    int
}

func (f *fakeMetrics) metric(context.Context, string) (float64, error) {
	f.calls++
	return f.value, f.err
}

func (f *fakeMetrics) AutomatedReadabilityIndex(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) ColemanLiauIndex(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) DaleChallScore(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) DifficultWords(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) FleschKincaidGrade(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) FleschReadingEase(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) GunningFog(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) LinsearWrite(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) SMOGIndex(ctx context.Context, s string) (float64, error) {
	return f.metric(ctx, s)
}
func (f *fakeMetrics) TextStandard(context.Context, string) (string, error) {
	f.calls++
	return f.standard, f.err
}

type fakeDiversity struct {
	value float64
	err   error
	calls int
	th    float64
}

func (f *fakeDiversity) MTLD(_ context.Context, _ string, threshold float64) (float64, error) {
	f.calls++
	f.th = threshold
	return f.value, f.err
}

func TestParseTextStandard(t *testing.T) {
	assert.Equal(t, 9.5, ParseTextStandard("9th and 10th grade"))
	assert.Equal(t, 7.0, ParseTextStandard("7th grade"))
	assert.Equal(t, -1.0, ParseTextStandard("-1th and -1th grade"))
	assert.Equal(t, 9.5, ParseTextStandard("9th-10th grade"))
	assert.Equal(t, 4.5, ParseTextStandard("-1th and 10th grade"))
	assert.True(t, math.IsNaN(ParseTextStandard("college graduate")))
	assert.True(t, math.IsNaN(ParseTextStandard("")))
}

func TestReadabilityExtract(t *testing.T) {
	m := &fakeMetrics{value: 8, standard: "8th and 9th grade"}
	d := &fakeDiversity{value: 42.5}
	e := &ReadabilityExtractor{Metrics: m, Diversity: d}

	got := e.Extract(context.Background(), "We will rebuild the middle class.")
	assert.Equal(t, 8.0, got.AutomatedReadabilityIndex)
	assert.Equal(t, 8.0, got.SMOGIndex)
	assert.Equal(t, 8.5, got.TextStandard)
	assert.Equal(t, 8.0, got.Readability)
	assert.Equal(t, 42.5, got.LexicalDiversity)
	assert.Equal(t, DefaultMTLDThreshold, d.th)
	assert.Equal(t, 10, m.calls)
}

func TestReadabilityExtractEmpty(t *testing.T) {
	m := &fakeMetrics{value: 8}
	d := &fakeDiversity{value: 1}
	e := &ReadabilityExtractor{Metrics: m, Diversity: d}

	got := e.Extract(context.Background(), "")
	assert.Zero(t, m.calls)
	assert.Zero(t, d.calls)
	assert.True(t, math.IsNaN(got.AutomatedReadabilityIndex))
	assert.True(t, math.IsNaN(got.TextStandard))
	assert.True(t, math.IsNaN(got.Readability))
	assert.Equal(t, 0.0, got.LexicalDiversity)
}

func TestLexicalDiversityNumericOnly(t *testing.T) {
	d := &fakeDiversity{err: errors.New("division by zero")}
	e := &ReadabilityExtractor{Metrics: &fakeMetrics{value: 1}, Diversity: d}

	got := e.Extract(context.Background(), "42.")
	assert.Equal(t, 0.0, got.LexicalDiversity)
	assert.Zero(t, d.calls)
}

func TestReadabilityExtractCollaboratorFailure(t *testing.T) {
	e := &ReadabilityExtractor{
		Metrics:   &fakeMetrics{err: errors.New("boom")},
		Diversity: &fakeDiversity{err: errors.New("boom")},
		Threshold: 0.5,
		Timeout:   time.Second,
	}

	got := e.Extract(context.Background(), "Some words here.")
	assert.True(t, math.IsNaN(got.GunningFog))
	assert.True(t, math.IsNaN(got.TextStandard))
	assert.True(t, math.IsNaN(got.Readability))
	assert.True(t, math.IsNaN(got.LexicalDiversity))
}

func TestReadabilityInfinityIsMissing(t *testing.T) {
	e := &ReadabilityExtractor{Metrics: &fakeMetrics{value: math.Inf(1), standard: "1st grade"}}

	got := e.Extract(context.Background(), "Hi.")
	assert.True(t, math.IsNaN(got.FleschReadingEase))
	assert.Equal(t, 1.0, got.TextStandard)
	// no diversity service configured
	assert.True(t, math.IsNaN(got.LexicalDiversity))
}
