package transcripts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yhat/scrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dzenilee/presidential/logging"
)

// Scraper fetches annotated debate transcripts published as one <p> per
// speaker turn.
type Scraper struct {
	c        *http.Client
	speakers map[string]bool // upper-case surnames
	log      *logrus.Entry
}

func NewScraper(speakers []string, timeout time.Duration) *Scraper {
	known := make(map[string]bool, len(speakers))
	for _, s := range speakers {
		known[strings.ToUpper(s)] = true
	}
	return &Scraper{
		c:        &http.Client{Timeout: timeout},
		speakers: known,
		log:      logging.NewLogger("scraper"),
	}
}

// Scrape fetches url and returns its speaker turns as segments of debate.
func (s *Scraper) Scrape(ctx context.Context, url, debate string) ([]Segment, error) {
	s.log.WithField("url", url).Info("fetching transcript")
	blocks, err := s.paragraphs(ctx, url)
	if err != nil {
		return nil, err
	}
	segs := s.AssignSpeakers(blocks)
	for i := range segs {
		segs[i].Debate = debate
	}
	return segs, nil
}

func (s *Scraper) paragraphs(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scrape %s: %s: %s", url, resp.Status, string(body))
	}
	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}
	return ParagraphBlocks(root), nil
}

// ParagraphBlocks returns the text of every non-empty <p> under root.
func ParagraphBlocks(root *html.Node) []string {
	var blocks []string
	for _, p := range scrape.FindAll(root, scrape.ByTag(atom.P)) {
		text := scrape.Text(p)
		if len(strings.Fields(text)) == 0 {
			continue
		}
		blocks = append(blocks, text)
	}
	return blocks
}

// speakerName reads a "NAME: text" prefix. Multi word prefixes resolve to
// their first known surname, so "SEN. BERNIE SANDERS" gives "SANDERS".
func (s *Scraper) speakerName(block string) (string, bool) {
	idx := strings.Index(block, ":")
	if idx < 2 {
		return "", false
	}
	parts := strings.Fields(block[:idx])
	switch {
	case len(parts) == 1:
		return strings.ToUpper(parts[0]), true
	case len(parts) > 1:
		for _, w := range parts {
			w = strings.ToUpper(strings.Trim(w, ".,"))
			if s.speakers[w] {
				return w, true
			}
		}
	}
	return "", false
}

// AssignSpeakers tags each block with its speaker. Blocks without a
// speaker prefix continue the previous turn.
func (s *Scraper) AssignSpeakers(blocks []string) []Segment {
	var out []Segment
	prev := UnknownSpeaker
	for _, b := range blocks {
		if len(strings.Fields(b)) == 0 {
			continue
		}
		text := b
		if name, ok := s.speakerName(b); ok {
			prev = strings.ToLower(name)
			if _, rest, found := strings.Cut(b, ": "); found {
				text = rest
			} else {
				text = strings.TrimSpace(b[strings.Index(b, ":")+1:])
			}
		}
		out = append(out, Segment{Text: text, Speaker: prev})
	}
	return out
}
