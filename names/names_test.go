package names

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	l := Default()
	assert.Contains(t, l.Candidates, "Sanders")
	assert.Contains(t, l.Moderators, "Blitzer")
}

func TestSpeakersDeduplicates(t *testing.T) {
	l := &Lists{
		Candidates: []string{"Warren"},
		Moderators: []string{"Bash", "bash"},
		Other:      []string{"Unknown"},
	}
	assert.Equal(t, []string{"Warren", "Bash", "Unknown"}, l.Speakers())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	require.NoError(t, os.WriteFile(path, []byte("candidates: [Yang]\nmoderators: [Holt]\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Yang"}, l.Candidates)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("moderators: [Holt]"))
	require.Error(t, err)
}
