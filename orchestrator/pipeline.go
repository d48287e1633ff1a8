package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dzenilee/presidential/clients"
	cfg "github.com/dzenilee/presidential/config"
	"github.com/dzenilee/presidential/doc"
	"github.com/dzenilee/presidential/features"
	"github.com/dzenilee/presidential/logging"
	"github.com/dzenilee/presidential/names"
	"github.com/dzenilee/presidential/storage"
	"github.com/dzenilee/presidential/transcripts"
)

// Uploader stores a finished table under a remote URI.
type Uploader interface {
	Upload(ctx context.Context, uri string, body io.Reader) error
}

type Pipeline struct {
	cfg        *cfg.Root
	names      *names.Lists
	featurizer *Featurizer
	uploader   Uploader
	log        *logrus.Entry
}

func NewPipeline(c *cfg.Root) (*Pipeline, error) {
	hc, err := clients.ReadConfig()
	if err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}
	http := clients.NewHTTP(hc)

	var annotator doc.Annotator = http.Annotator(c.Services.Annotator.URL)
	if c.Services.Redis.URL != "" {
		rdb, err := clients.NewRedis(c.Services.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		annotator = clients.NewCachedAnnotator(annotator, rdb, hc.CacheTTL)
	}

	lists, err := names.Load(c.Paths.Names)
	if err != nil {
		return nil, err
	}

	lex := &features.Lexicon{
		Candidates:          lists.Candidates,
		Target:              c.Features.TargetName,
		ExcludeSelfMentions: c.Features.ExcludeSelfMentions,
	}
	rd := &features.ReadabilityExtractor{
		Metrics:   http.Readability(c.Services.Readability.URL),
		Diversity: http.Diversity(c.Services.LexicalDiversity.URL),
		Threshold: c.Features.MTLDThreshold,
		Timeout:   cfg.DurSeconds(c.Features.Timeout),
		Log:       logging.NewLogger("readability"),
	}

	return &Pipeline{
		cfg:        c,
		names:      lists,
		featurizer: NewFeaturizer(annotator, lex, rd, c.Features.Workers, c.Features.BatchSize),
		log:        logging.NewLogger("pipeline"),
	}, nil
}

// Run featurizes the segment table at inPath and writes it, with the
// feature columns appended, to outPath. An empty outPath writes into a
// fresh session directory under paths.outputs; an s3:// outPath uploads
// the table instead of writing it locally.
func (p *Pipeline) Run(ctx context.Context, inPath, outPath string) (*RunManifest, error) {
	start := time.Now()
	f, err := os.Open(inPath)
	if err != nil {
		return nil, err
	}
	frame, err := transcripts.ReadFrame(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inPath, err)
	}
	segs, err := frame.Segments()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inPath, err)
	}
	p.log.WithFields(logrus.Fields{"input": inPath, "rows": len(segs)}).Info("featurizing")

	table, err := p.featurizer.Featurize(ctx, segs)
	if err != nil {
		return nil, err
	}
	out, err := frame.AppendColumns(features.Columns, table.Cells())
	if err != nil {
		return nil, err
	}

	sid := newSessionID()
	var dir string
	if outPath == "" || storage.IsS3URI(outPath) {
		if dir, err = mkSessionDir(p.cfg.Paths.Outputs, sid); err != nil {
			return nil, fmt.Errorf("session dir: %w", err)
		}
	} else {
		dir = filepath.Dir(outPath)
	}
	switch {
	case outPath == "":
		outPath = filepath.Join(dir, "features.csv")
		err = writeFrameFile(outPath, out)
	case storage.IsS3URI(outPath):
		err = p.upload(ctx, outPath, out)
	default:
		err = writeFrameFile(outPath, out)
	}
	if err != nil {
		return nil, err
	}

	m := RunManifest{
		SessionID:   sid,
		InputPath:   inPath,
		OutputPath:  outPath,
		GeneratedAt: time.Now().UTC(),
		Rows:        table.Len(),
		Columns:     out.Header,
		Unparsed:    table.Unparsed,
	}
	mpath, err := persistManifest(dir, m)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"output":   outPath,
		"manifest": mpath,
		"unparsed": len(table.Unparsed),
		"took":     time.Since(start).Round(time.Millisecond).String(),
	}).Info("done")
	return &m, nil
}

func (p *Pipeline) upload(ctx context.Context, uri string, f *transcripts.Frame) error {
	if p.uploader == nil {
		up, err := storage.New()
		if err != nil {
			return err
		}
		p.uploader = up
	}
	var buf bytes.Buffer
	if err := transcripts.WriteFrame(&buf, f); err != nil {
		return err
	}
	return p.uploader.Upload(ctx, uri, &buf)
}

// Preprocess labels every transcript under dir and writes the segment table.
func (p *Pipeline) Preprocess(dir, outPath string) (int, error) {
	segs, err := transcripts.ReadTranscriptDir(dir, p.names.Speakers())
	if err != nil {
		return 0, err
	}
	if err := writeFrameFile(outPath, transcripts.SegmentsFrame(segs)); err != nil {
		return 0, err
	}
	p.log.WithFields(logrus.Fields{"dir": dir, "segments": len(segs)}).Info("preprocessed")
	return len(segs), nil
}

// Scrape fetches every configured debate and writes one combined segment
// table. A debate that cannot be fetched is logged and skipped.
func (p *Pipeline) Scrape(ctx context.Context, outPath string) (int, error) {
	s := transcripts.NewScraper(p.names.Speakers(), cfg.DurSeconds(p.cfg.Features.Timeout))
	var all []transcripts.Segment
	for _, d := range p.cfg.Debates {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		id := debateID(d)
		segs, err := s.Scrape(ctx, d.URL, id)
		if err != nil {
			p.log.WithError(err).WithField("debate", id).Warn("scrape failed")
			continue
		}
		all = append(all, segs...)
	}
	if err := writeFrameFile(outPath, transcripts.SegmentsFrame(all)); err != nil {
		return 0, err
	}
	return len(all), nil
}

// debateID names a debate by its location, or its date when the location
// is missing.
func debateID(d cfg.Debate) string {
	if id := strings.TrimSpace(d.Location); id != "" {
		return id
	}
	return strings.TrimSpace(d.Date)
}

func writeFrameFile(path string, f *transcripts.Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := transcripts.WriteFrame(out, f); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
