// Package retrieval provides the scheme document store and keyword search.
package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// Document is one scheme document in the corpus.
type Document struct {
	ID     string
	Title  string
	Text   string
	Source string
}

// Store is a SQLite-backed document store.
type Store struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id     TEXT PRIMARY KEY,
	title  TEXT NOT NULL DEFAULT '',
	text   TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT ''
);
`

// Open opens (and initializes) the document store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(id, title, text, source) VALUES(?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, text=excluded.text, source=excluded.source`,
		doc.ID, doc.Title, doc.Text, doc.Source)
	if err != nil {
		return fmt.Errorf("put document %s: %w", doc.ID, err)
	}
	return nil
}

// Count returns the number of documents in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Search returns up to k documents ranked by keyword overlap with the
// query. Candidates are narrowed in SQL, then scored by how many
// distinct query terms they contain (title hits weigh double).
func (s *Store) Search(ctx context.Context, query string, k int) ([]Document, error) {
	terms := tokenize(query)
	if len(terms) == 0 || k <= 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2)
	for _, term := range terms {
		conds = append(conds, "(instr(lower(text), ?) > 0 OR instr(lower(title), ?) > 0)")
		args = append(args, term, term)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, text, source FROM documents WHERE `+strings.Join(conds, " OR "), args...)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	type scored struct {
		doc   Document
		score int
	}
	var candidates []scored
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Text, &d.Source); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		text := strings.ToLower(d.Text)
		title := strings.ToLower(d.Title)
		score := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				score++
			}
			if strings.Contains(title, term) {
				score += 2
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{doc: d, score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]Document, len(candidates))
	for i, c := range candidates {
		out[i] = c.doc
	}
	return out, nil
}

// tokenize lowercases the query and splits it into distinct terms,
// dropping stop words and single characters.
func tokenize(query string) []string {
	var stopwords = map[string]bool{
		"a": true, "an": true, "and": true, "are": true, "for": true,
		"how": true, "in": true, "is": true, "of": true, "on": true,
		"the": true, "to": true, "what": true, "which": true, "with": true,
	}

	// IsMark keeps Indic words whole: Kannada vowel signs and viramas
	// are combining marks, not letters.
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})

	seen := make(map[string]bool)
	var terms []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
