// Package names loads the static speaker name lists.
package names

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var defaultList []byte

// Lists are surnames as they appear in transcripts. They are read-only
// lookup tables once loaded.
type Lists struct {
	Candidates []string `yaml:"candidates"`
	Moderators []string `yaml:"moderators"`
	Other      []string `yaml:"other"`
}

// Default returns the embedded name lists.
func Default() *Lists {
	l, err := Parse(defaultList)
	if err != nil {
		panic(fmt.Sprintf("embedded names.yaml: %v", err))
	}
	return l
}

// Load reads name lists from path, or returns the embedded lists when path
// is empty.
func Load(path string) (*Lists, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Lists, error) {
	var l Lists
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("decode names: %w", err)
	}
	if len(l.Candidates) == 0 {
		return nil, fmt.Errorf("decode names: no candidates listed")
	}
	return &l, nil
}

// Speakers is every known speaker name, candidates first.
func (l *Lists) Speakers() []string {
	out := make([]string, 0, len(l.Candidates)+len(l.Moderators)+len(l.Other))
	seen := map[string]bool{}
	for _, group := range [][]string{l.Candidates, l.Moderators, l.Other} {
		for _, n := range group {
			k := strings.ToUpper(n)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, n)
		}
	}
	return out
}
