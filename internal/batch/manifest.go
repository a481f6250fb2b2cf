package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one panorama in the output manifest.
type ManifestEntry struct {
	Name    string   `json:"name"`
	Source  string   `json:"source"`
	Edge    int      `json:"edge"`
	Outputs []string `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}

// WriteManifest writes the batch results as JSON. Output paths are stored
// relative to the manifest's directory.
func WriteManifest(path string, edge int, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		outputs := make([]string, 0, len(r.Outputs))
		for _, o := range r.Outputs {
			if rel, err := filepath.Rel(dir, o); err == nil {
				o = filepath.ToSlash(rel)
			}
			outputs = append(outputs, o)
		}
		entries[i] = ManifestEntry{
			Name:    r.Name,
			Source:  r.Source,
			Edge:    edge,
			Outputs: outputs,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
