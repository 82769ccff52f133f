package retrieval

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "krishi-bhagya.txt"), []byte("Farm pond subsidy details."), 0644); err != nil {
		t.Fatal(err)
	}

	manifest := `documents:
  - id: rm-001
    title: Raita Vidya Nidhi
    source: https://raitamitra.karnataka.gov.in/
    text: Scholarship support for children of farmers.
  - id: rm-002
    title: Krishi Bhagya
    file: krishi-bhagya.txt
`
	path := filepath.Join(dir, "corpus.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Source != "https://raitamitra.karnataka.gov.in/" {
		t.Errorf("unexpected source: %s", docs[0].Source)
	}
	if docs[1].Text != "Farm pond subsidy details." {
		t.Errorf("file entry not resolved: %q", docs[1].Text)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"missing id", "documents:\n  - title: No ID\n    text: whatever\n"},
		{"no text or file", "documents:\n  - id: rm-009\n"},
		{"missing file", "documents:\n  - id: rm-010\n    file: nope.txt\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "m.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadManifest(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
