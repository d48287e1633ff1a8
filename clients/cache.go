package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/twmb/murmur3"

	"github.com/dzenilee/presidential/doc"
	"github.com/dzenilee/presidential/logging"
)

const cacheKeyPrefix = "presidential:doc:"

// CachedAnnotator keeps parsed documents in Redis keyed by a hash of the
// text. Cache failures are logged and the wrapped annotator is used as if
// the cache was empty.
type CachedAnnotator struct {
	next doc.Annotator
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  *logrus.Entry
}

// NewRedis opens a client from a redis:// URL.
func NewRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.MaxRetries = 2
	return redis.NewClient(opts), nil
}

func NewCachedAnnotator(next doc.Annotator, rdb redis.UniversalClient, ttl time.Duration) *CachedAnnotator {
	return &CachedAnnotator{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  logging.NewLogger("annotation-cache"),
	}
}

func CacheKey(text string) string {
	h := murmur3.New64()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, h.Sum64())
}

func (c *CachedAnnotator) Parse(ctx context.Context, text string) (*doc.Document, error) {
	docs, err := c.ParseMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

func (c *CachedAnnotator) ParseMany(ctx context.Context, texts []string) ([]*doc.Document, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := c.lookup(ctx, texts)

	var missIdx []int
	var missTexts []string
	for i, d := range out {
		if d == nil {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, texts[i])
		}
	}
	if len(missTexts) == 0 {
		return out, nil
	}

	parsed, err := c.next.ParseMany(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(parsed) != len(missTexts) {
		return nil, fmt.Errorf("%w: annotator returned %d docs for %d texts", ErrCollaborator, len(parsed), len(missTexts))
	}
	for j, i := range missIdx {
		out[i] = parsed[j]
	}
	c.store(ctx, missTexts, parsed)
	return out, nil
}

func (c *CachedAnnotator) lookup(ctx context.Context, texts []string) []*doc.Document {
	out := make([]*doc.Document, len(texts))
	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = CacheKey(t)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.WithError(err).Debug("cache lookup failed")
		return out
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var d doc.Document
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			c.log.WithError(err).WithField("key", keys[i]).Debug("dropping corrupt cache entry")
			continue
		}
		// hash collisions resolve to a miss
		if d.Text != texts[i] {
			continue
		}
		out[i] = &d
	}
	return out
}

func (c *CachedAnnotator) store(ctx context.Context, texts []string, docs []*doc.Document) {
	pipe := c.rdb.Pipeline()
	for i, d := range docs {
		if d == nil {
			continue
		}
		// keyed and checked by the input text, whatever the annotator echoed
		entry := *d
		entry.Text = texts[i]
		b, err := json.Marshal(&entry)
		if err != nil {
			continue
		}
		pipe.Set(ctx, CacheKey(texts[i]), b, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.WithError(err).Debug("cache store failed")
	}
}
