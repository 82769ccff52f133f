package retrieval

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "schemes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	docs := []Document{
		{ID: "rm-001", Title: "Raita Vidya Nidhi", Text: "Scholarship support for children of farmers pursuing higher education in Karnataka."},
		{ID: "rm-002", Title: "Krishi Bhagya", Text: "Rainwater harvesting through farm ponds for dryland farmers, with subsidy for polythene lining."},
		{ID: "rm-003", Title: "PM Kisan", Text: "Income support of six thousand rupees per year to landholding farmer families."},
	}
	for _, d := range docs {
		if err := store.Put(context.Background(), d); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPutAndCount(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 documents, got %d", n)
	}

	// Put with an existing id replaces, not duplicates.
	if err := store.Put(context.Background(), Document{ID: "rm-001", Text: "updated"}); err != nil {
		t.Fatal(err)
	}
	n, _ = store.Count(context.Background())
	if n != 3 {
		t.Errorf("expected 3 documents after upsert, got %d", n)
	}
}

func TestPutRequiresID(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put(context.Background(), Document{Text: "orphan"}); err == nil {
		t.Fatal("expected error for document without id")
	}
}

func TestSearch(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)

	docs, err := store.Search(context.Background(), "rainwater harvesting subsidy", 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 {
		t.Fatal("expected at least one hit")
	}
	if docs[0].ID != "rm-002" {
		t.Errorf("expected rm-002 first, got %s", docs[0].ID)
	}
}

func TestSearchTitleWeighsDouble(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)

	docs, err := store.Search(context.Background(), "krishi farmers", 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 || docs[0].ID != "rm-002" {
		t.Errorf("expected title match rm-002 first, got %v", docs)
	}
}

func TestSearchLimit(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)

	docs, err := store.Search(context.Background(), "farmers", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}
}

func TestSearchNoTerms(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)

	docs, err := store.Search(context.Background(), "of the a", 6)
	if err != nil {
		t.Fatal(err)
	}
	if docs != nil {
		t.Errorf("expected no results for stop-word query, got %v", docs)
	}
}

func TestSearchKannadaQuery(t *testing.T) {
	store := openTestStore(t)
	seed(t, store)
	if err := store.Put(context.Background(), Document{
		ID:    "rm-004",
		Title: "ಕೃಷಿ ಭಾಗ್ಯ",
		Text:  "ಕೃಷಿ ಹೊಂಡ ನಿರ್ಮಾಣಕ್ಕೆ ಸಹಾಯಧನ ನೀಡುವ ಯೋಜನೆ.",
	}); err != nil {
		t.Fatal(err)
	}

	docs, err := store.Search(context.Background(), "ಕೃಷಿ ಹೊಂಡ ಸಹಾಯಧನ", 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 || docs[0].ID != "rm-004" {
		t.Errorf("expected rm-004 first for Kannada query, got %v", docs)
	}
}

func TestTokenize(t *testing.T) {
	terms := tokenize("What is the Krishi Bhagya subsidy, and how to apply?")
	want := []string{"krishi", "bhagya", "subsidy", "apply"}
	if len(terms) != len(want) {
		t.Fatalf("expected %v, got %v", want, terms)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term %d: expected %s, got %s", i, want[i], terms[i])
		}
	}
}

func TestTokenizeKannada(t *testing.T) {
	// Vowel signs and viramas are combining marks; words must survive whole.
	terms := tokenize("ಕೃಷಿ ಭಾಗ್ಯ ಸಹಾಯಧನ ಎಷ್ಟು?")
	want := []string{"ಕೃಷಿ", "ಭಾಗ್ಯ", "ಸಹಾಯಧನ", "ಎಷ್ಟು"}
	if len(terms) != len(want) {
		t.Fatalf("expected %v, got %v", want, terms)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term %d: expected %s, got %s", i, want[i], terms[i])
		}
	}
}
