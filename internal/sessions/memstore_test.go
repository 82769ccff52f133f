package sessions

import (
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	store := NewMemStore()

	s, err := store.Create()
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" {
		t.Fatal("expected a non-empty session id")
	}

	got, err := store.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != s.ID {
		t.Errorf("expected id %s, got %s", s.ID, got.ID)
	}
}

func TestGetUnknown(t *testing.T) {
	store := NewMemStore()
	if _, err := store.Get("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Append("nope", Message{Role: "user", Content: "x"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on append, got %v", err)
	}
}

func TestAppendAndHistory(t *testing.T) {
	store := NewMemStore()
	s, _ := store.Create()

	if err := store.Append(s.ID, Message{Role: "user", Content: "Hi"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(s.ID, Message{Role: "assistant", Content: "Hello!"}); err != nil {
		t.Fatal(err)
	}

	hist, err := store.History(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(hist))
	}
	if hist[0].Role != "user" || hist[1].Role != "assistant" {
		t.Errorf("unexpected order: %+v", hist)
	}
	if hist[0].Ts.IsZero() {
		t.Error("expected timestamp to be filled in")
	}

	meta, _ := store.Get(s.ID)
	if meta.MessageCount != 2 {
		t.Errorf("expected message count 2, got %d", meta.MessageCount)
	}

	// History returns a copy.
	hist[0].Content = "mutated"
	hist2, _ := store.History(s.ID)
	if hist2[0].Content != "Hi" {
		t.Error("History must return a copy")
	}
}

func TestListOrder(t *testing.T) {
	store := NewMemStore()
	a, _ := store.Create()
	b, _ := store.Create()

	if err := store.Append(a.ID, Message{Role: "user", Content: "x", Ts: time.Now().Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != a.ID {
		t.Errorf("expected most recently updated first, got %s (b=%s)", list[0].ID, b.ID)
	}
}
