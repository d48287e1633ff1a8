package clients

import (
	"context"
	"fmt"
	"math"
)

// --- Readability (/readability/<metric>) ---
type TextReq struct {
	Text string `json:"text"`
}
type ScoreResp struct {
	Score *float64 `json:"score"`
}
type GradeResp struct {
	Grade string `json:"grade"`
}

// Readability exposes one call per readability formula of a textstat style
// service.
type Readability struct {
	h   *HTTP
	url string
}

func (h *HTTP) Readability(url string) *Readability {
	return &Readability{h: h, url: url}
}

func (r *Readability) metric(ctx context.Context, name, text string) (float64, error) {
	var out ScoreResp
	if err := r.h.postJSON(ctx, "readability", r.url, "/readability/"+name, TextReq{Text: text}, &out); err != nil {
		return math.NaN(), err
	}
	if out.Score == nil {
		return math.NaN(), fmt.Errorf("%w: readability %s: null score", ErrCollaborator, name)
	}
	return *out.Score, nil
}

func (r *Readability) AutomatedReadabilityIndex(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "automated_readability_index", text)
}

func (r *Readability) ColemanLiauIndex(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "coleman_liau_index", text)
}

func (r *Readability) DaleChallScore(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "dale_chall_readability_score", text)
}

func (r *Readability) DifficultWords(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "difficult_words", text)
}

func (r *Readability) FleschKincaidGrade(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "flesch_kincaid_grade", text)
}

func (r *Readability) FleschReadingEase(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "flesch_reading_ease", text)
}

func (r *Readability) GunningFog(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "gunning_fog", text)
}

func (r *Readability) LinsearWrite(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "linsear_write_formula", text)
}

func (r *Readability) SMOGIndex(ctx context.Context, text string) (float64, error) {
	return r.metric(ctx, "smog_index", text)
}

func (r *Readability) TextStandard(ctx context.Context, text string) (string, error) {
	var out GradeResp
	if err := r.h.postJSON(ctx, "readability", r.url, "/readability/text_standard", TextReq{Text: text}, &out); err != nil {
		return "", err
	}
	return out.Grade, nil
}

// --- Lexical diversity (/mtld) ---
type MTLDReq struct {
	Text      string  `json:"text"`
	Threshold float64 `json:"threshold"`
}
type MTLDResp struct {
	MTLD *float64 `json:"mtld"`
}

type Diversity struct {
	h   *HTTP
	url string
}

func (h *HTTP) Diversity(url string) *Diversity {
	return &Diversity{h: h, url: url}
}

func (d *Diversity) MTLD(ctx context.Context, text string, threshold float64) (float64, error) {
	var out MTLDResp
	if err := d.h.postJSON(ctx, "lexical diversity", d.url, "/mtld", MTLDReq{Text: text, Threshold: threshold}, &out); err != nil {
		return math.NaN(), err
	}
	if out.MTLD == nil {
		return math.NaN(), fmt.Errorf("%w: lexical diversity: null mtld", ErrCollaborator)
	}
	return *out.MTLD, nil
}
