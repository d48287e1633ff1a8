package transcripts

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	in := "segment,speaker,debate,extra\n\"Hello, world.\",warren,Miami-FL,x\nBye,sanders,Miami-FL,y\n"
	f, err := ReadFrame(strings.NewReader(in))
	require.NoError(t, err)

	segs, err := f.Segments()
	require.NoError(t, err)
	want := []Segment{
		{Text: "Hello, world.", Speaker: "warren", Debate: "Miami-FL"},
		{Text: "Bye", Speaker: "sanders", Debate: "Miami-FL"},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}

	out, err := f.AppendColumns([]string{"n", "m"}, [][]string{{"1", ""}, {"2", "3.5"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, out))
	assert.Equal(t,
		"segment,speaker,debate,extra,n,m\n\"Hello, world.\",warren,Miami-FL,x,1,\nBye,sanders,Miami-FL,y,2,3.5\n",
		buf.String())
	// the source frame is untouched
	assert.Len(t, f.Header, 4)
}

func TestFrameErrors(t *testing.T) {
	_, err := ReadFrame(strings.NewReader(""))
	require.Error(t, err)

	_, err = ReadFrame(strings.NewReader("segment,speaker\nonly-one\n"))
	require.Error(t, err)

	f, err := ReadFrame(strings.NewReader("text\nhello\n"))
	require.NoError(t, err)
	_, err = f.Segments()
	require.ErrorIs(t, err, ErrNoSegmentColumn)

	_, err = f.AppendColumns([]string{"a"}, nil)
	require.Error(t, err)
}

func TestSegmentsFrame(t *testing.T) {
	f := SegmentsFrame([]Segment{{Text: "a", Speaker: "b", Debate: "c"}})
	assert.Equal(t, []string{ColSegment, ColSpeaker, ColDebate}, f.Header)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, f.Rows)
}

func TestReadTranscriptDir(t *testing.T) {
	dir := t.TempDir()
	body := strings.Join([]string{
		"Good evening and welcome.",
		"BLITZER: Senator, your response.",
		"",
		"SANDERS: Thank you, Wolf. [applause] We need change.",
		"And we need it now. [crosstalk]",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debate-1.txt"), []byte(body), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("SANDERS: skip"), 0o644))

	segs, err := ReadTranscriptDir(dir, []string{"Sanders", "Blitzer", "Clinton"})
	require.NoError(t, err)

	want := []Segment{
		{Text: "Good evening and welcome.", Speaker: "unknown", Debate: "debate-1"},
		{Text: "Senator, your response.", Speaker: "blitzer", Debate: "debate-1"},
		{Text: "Thank you, Wolf.  We need change.", Speaker: "sanders", Debate: "debate-1"},
		{Text: "And we need it now.", Speaker: "sanders", Debate: "debate-1"},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTranscriptPrefixWins(t *testing.T) {
	dir := t.TempDir()
	body := "CLINTON: I agree with SANDERS on this.\nSANDERS: Thank you, CLINTON.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flint.txt"), []byte(body), 0o644))

	segs, err := ReadTranscriptDir(dir, []string{"Clinton", "Sanders"})
	require.NoError(t, err)
	want := []Segment{
		{Text: "I agree with SANDERS on this.", Speaker: "clinton", Debate: "flint"},
		{Text: "Thank you, CLINTON.", Speaker: "sanders", Debate: "flint"},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

const debatePage = `<html><body>
<h1>Transcript</h1>
<p>Welcome to the debate.</p>
<p>TAPPER: Senator Sanders, your response?</p>
<p>SEN. BERNIE SANDERS: Thank you. Let me say this: we need change.</p>
<p>It is long overdue.</p>
<p>   </p>
<p>WARREN: I agree.</p>
</body></html>`

func TestScraper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(debatePage))
	}))
	defer srv.Close()

	s := NewScraper([]string{"Sanders", "Warren", "Tapper"}, 5*time.Second)
	segs, err := s.Scrape(context.Background(), srv.URL, "Miami-FL")
	require.NoError(t, err)

	want := []Segment{
		{Text: "Welcome to the debate.", Speaker: "unknown", Debate: "Miami-FL"},
		{Text: "Senator Sanders, your response?", Speaker: "tapper", Debate: "Miami-FL"},
		{Text: "Thank you. Let me say this: we need change.", Speaker: "sanders", Debate: "Miami-FL"},
		{Text: "It is long overdue.", Speaker: "sanders", Debate: "Miami-FL"},
		{Text: "I agree.", Speaker: "warren", Debate: "Miami-FL"},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestScraperHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewScraper(nil, time.Second).Scrape(context.Background(), srv.URL, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
