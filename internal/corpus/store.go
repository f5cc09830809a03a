// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists the reference documents that originality scoring
// compares against. Documents live in a sqlite file; a plain directory of
// text files is accepted as a read-only alternative.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const documentsTable = "documents"

// Document is one reference text.
type Document struct {
	ID        string `db:"id" json:"id" yaml:"id"`
	Title     string `db:"title" json:"title" yaml:"title"`
	Content   string `db:"content" json:"-" yaml:"-"`
	WordCount int    `db:"word_count" json:"word_count" yaml:"word_count"`
	AddedAt   string `db:"added_at" json:"added_at" yaml:"added_at"`
}

// Store manages the corpus sqlite database.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the corpus database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating corpus directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	s := newStore(db)
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func newStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		added_at TEXT NOT NULL
	)`)
	return err
}

// Upsert inserts doc or replaces the stored document with the same ID.
// An empty AddedAt is stamped with the current time.
func (s *Store) Upsert(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document has no id")
	}
	if doc.AddedAt == "" {
		doc.AddedAt = time.Now().UTC().Format(time.RFC3339)
	}

	query, args, err := sq.Insert(documentsTable).
		Columns("id", "title", "content", "word_count", "added_at").
		Values(doc.ID, doc.Title, doc.Content, doc.WordCount, doc.AddedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET title = excluded.title, content = excluded.content, " +
			"word_count = excluded.word_count, added_at = excluded.added_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

// Load returns up to limit documents with content, ordered by ID. A
// non-positive limit loads everything.
func (s *Store) Load(ctx context.Context, limit int) ([]Document, error) {
	b := sq.Select("id", "title", "content", "word_count", "added_at").
		From(documentsTable).
		OrderBy("id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return s.selectDocuments(ctx, b)
}

// List returns every document's metadata without content, ordered by ID.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	b := sq.Select("id", "title", "word_count", "added_at").
		From(documentsTable).
		OrderBy("id")
	return s.selectDocuments(ctx, b)
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("count(*)").From(documentsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Delete removes the document with id. Missing ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete(documentsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	return nil
}

func (s *Store) selectDocuments(ctx context.Context, b sq.SelectBuilder) ([]Document, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	var docs []Document
	if err := s.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	return docs, nil
}
