package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// RunManifest describes one featurization run.
type RunManifest struct {
	SessionID   string    `json:"session_id"`
	InputPath   string    `json:"input_path"`
	OutputPath  string    `json:"output_path"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	Unparsed    []int     `json:"unparsed_rows,omitempty"`
}

func newSessionID() string {
	return "session_" + time.Now().Format("20060102-150405")
}

func mkSessionDir(outputsRoot, sid string) (string, error) {
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persistManifest writes run.json into dir.
func persistManifest(dir string, m RunManifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "run.json")
	if err := writeJSON(path, m); err != nil {
		return "", err
	}
	return path, nil
}
