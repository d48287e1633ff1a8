package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrCollaborator wraps every failure reported by an external service.
var ErrCollaborator = errors.New("collaborator failure")

// Config tunes the HTTP transport shared by all service clients.
type Config struct {
	Timeout      time.Duration `envconfig:"PRESIDENTIAL_HTTP_TIMEOUT" default:"60s"`
	MaxIdleConns int           `envconfig:"PRESIDENTIAL_HTTP_MAX_IDLE_CONNS" default:"16"`
	CacheTTL     time.Duration `envconfig:"PRESIDENTIAL_CACHE_TTL" default:"168h"`
}

func ReadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type HTTP struct{ c *http.Client }

func NewHTTP(cfg Config) *HTTP {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = cfg.MaxIdleConns
	return &HTTP{c: &http.Client{Timeout: cfg.Timeout, Transport: tr}}
}

// postJSON sends req as JSON to url+path and decodes the response into out.
func (h *HTTP) postJSON(ctx context.Context, name, url, path string, req, out any) error {
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(r)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCollaborator, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s: %s", ErrCollaborator, name, resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s decode: %v", ErrCollaborator, name, err)
	}
	return nil
}
