package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dzenilee/presidential/doc"
	"github.com/dzenilee/presidential/features"
	"github.com/dzenilee/presidential/logging"
	"github.com/dzenilee/presidential/transcripts"
)

// Featurizer turns segments into feature records. It keeps no state
// between calls.
type Featurizer struct {
	Annotator   doc.Annotator
	Lexicon     *features.Lexicon
	Readability *features.ReadabilityExtractor
	Workers     int
	BatchSize   int

	log *logrus.Entry
}

func NewFeaturizer(a doc.Annotator, lex *features.Lexicon, rd *features.ReadabilityExtractor, workers, batchSize int) *Featurizer {
	return &Featurizer{
		Annotator:   a,
		Lexicon:     lex,
		Readability: rd,
		Workers:     workers,
		BatchSize:   batchSize,
		log:         logging.NewLogger("featurizer"),
	}
}

// Featurize returns one record per segment, in input order. Segments that
// fail anywhere get fallback values in the affected columns; only context
// cancellation aborts the run.
func (f *Featurizer) Featurize(ctx context.Context, segs []transcripts.Segment) (*Table, error) {
	if f.log == nil {
		f.log = logging.NewLogger("featurizer")
	}
	texts := make([]string, len(segs))
	for i, s := range segs {
		texts[i] = features.Normalize(s.Text)
	}

	docs := f.annotate(ctx, texts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := &Table{
		Segments: segs,
		Records:  make([]features.Record, len(segs)),
	}
	for i := range segs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if docs[i] == nil {
			t.Unparsed = append(t.Unparsed, i)
		}
		t.Records[i] = f.record(ctx, i, texts[i], segs[i].Speaker, docs[i])
	}
	f.log.WithFields(logrus.Fields{
		"segments": len(segs),
		"unparsed": len(t.Unparsed),
	}).Info("featurized")
	return t, nil
}

func (f *Featurizer) record(ctx context.Context, row int, text, speaker string, parsed *doc.Document) features.Record {
	return guard(f.log, row, "record", features.FallbackRecord(text), func() features.Record {
		lex := guard(f.log, row, "lexical", features.NaNLexical(), func() features.Lexical {
			return f.Lexicon.Extract(text, speaker, parsed)
		})
		syn := guard(f.log, row, "syntactic", features.NaNSyntactic(), func() features.Syntactic {
			return features.ExtractSyntactic(parsed)
		})
		rd := guard(f.log, row, "readability", features.NaNReadability(), func() features.ReadabilityScores {
			rd := *f.Readability
			if rd.Log == nil {
				rd.Log = f.log
			}
			rd.Log = rd.Log.WithField("segment", row)
			return rd.Extract(ctx, text)
		})
		return features.NewRecord(text, lex, syn, rd)
	})
}
