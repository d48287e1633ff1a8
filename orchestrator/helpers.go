package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dzenilee/presidential/doc"
)

// batch is a run of texts together with their row indices.
type batch struct {
	rows  []int
	texts []string
}

func batches(rows []int, texts []string, size int) []batch {
	if size < 1 {
		size = 1
	}
	var out []batch
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		out = append(out, batch{rows: rows[start:end], texts: texts[start:end]})
	}
	return out
}

// annotate parses texts in batches on f.Workers goroutines. out[i] is the
// document for texts[i], or nil when it could not be parsed. Blank texts
// get an empty document without a service call.
func (f *Featurizer) annotate(ctx context.Context, texts []string) []*doc.Document {
	out := make([]*doc.Document, len(texts))

	var pending []string
	var pendingIdx []int
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			out[i] = &doc.Document{Text: t}
			continue
		}
		pending = append(pending, t)
		pendingIdx = append(pendingIdx, i)
	}
	if len(pending) == 0 {
		return out
	}

	jobs := make(chan batch)
	var wg sync.WaitGroup
	workers := f.Workers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				docs := f.parseBatch(ctx, b)
				for j, d := range docs {
					// batches own disjoint rows
					out[b.rows[j]] = d
				}
			}
		}()
	}

	for _, b := range batches(pendingIdx, pending, f.BatchSize) {
		if ctx.Err() != nil {
			break
		}
		jobs <- b
	}
	close(jobs)
	wg.Wait()
	return out
}

// parseBatch falls back to one call per text when the batch call fails,
// so a single bad segment only loses its own document.
func (f *Featurizer) parseBatch(ctx context.Context, b batch) []*doc.Document {
	docs, err := safeParse(func() ([]*doc.Document, error) {
		return f.Annotator.ParseMany(ctx, b.texts)
	})
	if err == nil && len(docs) == len(b.texts) {
		return docs
	}
	if err == nil {
		err = fmt.Errorf("annotator returned %d docs for %d texts", len(docs), len(b.texts))
	}
	f.log.WithError(err).WithFields(logrus.Fields{
		"first_segment": b.rows[0],
		"batch_size":    len(b.texts),
	}).Warn("batch annotation failed, retrying per segment")

	docs = make([]*doc.Document, len(b.texts))
	for j, text := range b.texts {
		if ctx.Err() != nil {
			break
		}
		d, err := safeParse(func() ([]*doc.Document, error) {
			d, err := f.Annotator.Parse(ctx, text)
			return []*doc.Document{d}, err
		})
		if err != nil || d[0] == nil {
			f.log.WithError(err).WithField("segment", b.rows[j]).Warn("segment annotation failed")
			continue
		}
		docs[j] = d[0]
	}
	return docs
}

func safeParse(fn func() ([]*doc.Document, error)) (docs []*doc.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			docs, err = nil, fmt.Errorf("annotator panic: %v", r)
		}
	}()
	return fn()
}

// guard runs fn and substitutes fallback if it panics.
func guard[T any](log *logrus.Entry, row int, feature string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"segment": row,
				"feature": feature,
				"panic":   fmt.Sprint(r),
			}).Warn("feature extraction failed")
			out = fallback
		}
	}()
	return fn()
}
