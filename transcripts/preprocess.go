package transcripts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dzenilee/presidential/features"
)

// ReadTranscriptDir reads every *.txt transcript in dir, in name order.
// Each non-blank line becomes one segment labelled with the last known
// speaker whose upper-case name occurs in it; lines without one keep the
// previous speaker. The "NAME: " prefix and bracketed annotations are
// removed and the debate id is the file name without extension.
func ReadTranscriptDir(dir string, speakers []string) ([]Segment, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var out []Segment
	for _, p := range paths {
		segs, err := readTranscript(p, speakers)
		if err != nil {
			return nil, err
		}
		out = append(out, segs...)
	}
	return out, nil
}

func readTranscript(path string, speakers []string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	debate := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	label := UnknownSpeaker

	var out []Segment
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if l, ok := lineSpeaker(line, speakers); ok {
			label = l
		}
		text := strings.TrimPrefix(strings.TrimSpace(line), strings.ToUpper(label)+": ")
		out = append(out, Segment{
			Text:    features.Normalize(text),
			Speaker: label,
			Debate:  debate,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return out, nil
}

// lineSpeaker returns the lower-cased speaker of line. A known "NAME:"
// prefix wins; otherwise it is the last speaker name whose upper-case form
// occurs anywhere in the line.
func lineSpeaker(line string, speakers []string) (string, bool) {
	if prefix, _, ok := strings.Cut(line, ":"); ok {
		prefix = strings.TrimSpace(prefix)
		for _, name := range speakers {
			if prefix == strings.ToUpper(name) {
				return strings.ToLower(name), true
			}
		}
	}
	found := ""
	for _, name := range speakers {
		if strings.Contains(line, strings.ToUpper(name)) {
			found = name
		}
	}
	if found == "" {
		return "", false
	}
	return strings.ToLower(found), true
}
