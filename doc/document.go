// Package doc holds the parsed representation of one segment as produced by
// the linguistic annotator. Values are read-only for feature extraction.
package doc

import "context"

const (
	DepRoot   = "ROOT"
	DepNeg    = "neg"
	DepXComp  = "xcomp"
	DepCComp  = "ccomp"
	DepAdvCl  = "advcl"
	DepDative = "dative"

	PosVerb  = "VERB"
	PosSpace = "SPACE"

	TagModal = "MD"
)

// Token is one annotated token. Index is the position in the whole
// document, Head the document index of its syntactic head.
type Token struct {
	Index int    `json:"i"`
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Tag   string `json:"tag"`
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
}

// Sentence is a half-open span [Start, End) over Document.Tokens.
type Sentence struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Document struct {
	Text      string     `json:"text"`
	Tokens    []Token    `json:"tokens"`
	Sentences []Sentence `json:"sents"`
}

// SentenceTokens returns the tokens of s, clamped to the document bounds.
func (d *Document) SentenceTokens(s Sentence) []Token {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(d.Tokens) {
		end = len(d.Tokens)
	}
	if start >= end {
		return nil
	}
	return d.Tokens[start:end]
}

// HeadOf returns the head token of t, or false when the head index points
// outside the document.
func (d *Document) HeadOf(t Token) (Token, bool) {
	if t.Head < 0 || t.Head >= len(d.Tokens) {
		return Token{}, false
	}
	return d.Tokens[t.Head], true
}

// Annotator turns raw text into parsed documents. ParseMany returns one
// document per input text, in input order.
type Annotator interface {
	Parse(ctx context.Context, text string) (*Document, error)
	ParseMany(ctx context.Context, texts []string) ([]*Document, error)
}
