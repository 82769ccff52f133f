package retrieval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists the documents of a corpus, either inline or as file
// references relative to the manifest location.
type Manifest struct {
	Documents []ManifestEntry `yaml:"documents"`
}

// ManifestEntry describes one document. Exactly one of Text and File
// must be set.
type ManifestEntry struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title,omitempty"`
	Source string `yaml:"source,omitempty"`
	Text   string `yaml:"text,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// LoadManifest reads and resolves a YAML corpus manifest. File entries
// are read relative to the manifest's directory.
func LoadManifest(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	baseDir := filepath.Dir(path)
	docs := make([]Document, 0, len(m.Documents))
	for i, e := range m.Documents {
		if e.ID == "" {
			return nil, fmt.Errorf("manifest entry %d: id is required", i)
		}
		text := e.Text
		if text == "" && e.File != "" {
			raw, err := os.ReadFile(filepath.Join(baseDir, e.File))
			if err != nil {
				return nil, fmt.Errorf("manifest entry %s: %w", e.ID, err)
			}
			text = string(raw)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("manifest entry %s: no text or file", e.ID)
		}
		docs = append(docs, Document{
			ID:     e.ID,
			Title:  e.Title,
			Text:   text,
			Source: e.Source,
		})
	}
	return docs, nil
}
