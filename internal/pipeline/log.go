package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Interaction is one answered exchange, serialized to JSONL for
// offline inspection.
type Interaction struct {
	Ts           float64  `json:"ts"`
	UserID       string   `json:"user_id"`
	Query        string   `json:"query"`
	Answer       string   `json:"answer"`
	RetrievedIDs []string `json:"retrieved_ids"`
}

// InteractionLog appends interaction records to a JSONL file.
type InteractionLog struct {
	mu   sync.Mutex
	path string
}

// NewInteractionLog creates a logger writing to path. The parent
// directory is created on first append.
func NewInteractionLog(path string) *InteractionLog {
	return &InteractionLog{path: path}
}

// Append writes one record.
func (l *InteractionLog) Append(rec Interaction) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}
