package clients

import (
	"context"
	"fmt"

	"github.com/dzenilee/presidential/doc"
)

// --- Annotator (/parse, /parse_many) ---
type ParseReq struct {
	Text string `json:"text"`
}
type ParseManyReq struct {
	Texts []string `json:"texts"`
}
type ParseManyResp struct {
	Docs []*doc.Document `json:"docs"`
}

// Annotator talks to a dependency parsing service.
type Annotator struct {
	h   *HTTP
	url string
}

func (h *HTTP) Annotator(url string) *Annotator {
	return &Annotator{h: h, url: url}
}

func (a *Annotator) Parse(ctx context.Context, text string) (*doc.Document, error) {
	var out doc.Document
	if err := a.h.postJSON(ctx, "annotator", a.url, "/parse", ParseReq{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Annotator) ParseMany(ctx context.Context, texts []string) ([]*doc.Document, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var out ParseManyResp
	if err := a.h.postJSON(ctx, "annotator", a.url, "/parse_many", ParseManyReq{Texts: texts}, &out); err != nil {
		return nil, err
	}
	if len(out.Docs) != len(texts) {
		return nil, fmt.Errorf("%w: annotator returned %d docs for %d texts", ErrCollaborator, len(out.Docs), len(texts))
	}
	for i, d := range out.Docs {
		if d == nil {
			return nil, fmt.Errorf("%w: annotator returned no doc at %d", ErrCollaborator, i)
		}
	}
	return out.Docs, nil
}
