// Package transcripts reads and writes debate segment tables and turns raw
// transcripts into segments.
package transcripts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

const (
	ColSegment = "segment"
	ColSpeaker = "speaker"
	ColDebate  = "debate"

	UnknownSpeaker = "unknown"
)

// Segment is one utterance attributed to one speaker in one debate.
type Segment struct {
	Text    string
	Speaker string
	Debate  string
}

// Frame is a CSV table kept as strings so that columns the pipeline does
// not know about survive a round trip.
type Frame struct {
	Header []string
	Rows   [][]string
}

var ErrNoSegmentColumn = errors.New("table has no segment column")

func ReadFrame(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("read csv: empty input")
	}
	f := &Frame{Header: records[0], Rows: records[1:]}
	for i, row := range f.Rows {
		if len(row) != len(f.Header) {
			return nil, fmt.Errorf("read csv: row %d has %d fields, header has %d", i+1, len(row), len(f.Header))
		}
	}
	return f, nil
}

func WriteFrame(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Column returns the index of name in the header, or -1.
func (f *Frame) Column(name string) int {
	for i, h := range f.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Segments returns one Segment per row, in row order. Missing speaker or
// debate columns leave those fields empty.
func (f *Frame) Segments() ([]Segment, error) {
	seg := f.Column(ColSegment)
	if seg < 0 {
		return nil, ErrNoSegmentColumn
	}
	spk, deb := f.Column(ColSpeaker), f.Column(ColDebate)

	out := make([]Segment, len(f.Rows))
	for i, row := range f.Rows {
		out[i].Text = row[seg]
		if spk >= 0 {
			out[i].Speaker = row[spk]
		}
		if deb >= 0 {
			out[i].Debate = row[deb]
		}
	}
	return out, nil
}

// AppendColumns returns a copy of f with extra columns on the right.
// values must hold one row per row of f.
func (f *Frame) AppendColumns(names []string, values [][]string) (*Frame, error) {
	if len(values) != len(f.Rows) {
		return nil, fmt.Errorf("append columns: %d value rows for %d rows", len(values), len(f.Rows))
	}
	out := &Frame{
		Header: append(append([]string{}, f.Header...), names...),
		Rows:   make([][]string, len(f.Rows)),
	}
	for i, row := range f.Rows {
		if len(values[i]) != len(names) {
			return nil, fmt.Errorf("append columns: row %d has %d values for %d columns", i, len(values[i]), len(names))
		}
		r := make([]string, 0, len(row)+len(names))
		r = append(r, row...)
		out.Rows[i] = append(r, values[i]...)
	}
	return out, nil
}

// SegmentsFrame builds a segment, speaker, debate table.
func SegmentsFrame(segs []Segment) *Frame {
	f := &Frame{Header: []string{ColSegment, ColSpeaker, ColDebate}}
	for _, s := range segs {
		f.Rows = append(f.Rows, []string{s.Text, s.Speaker, s.Debate})
	}
	return f
}
