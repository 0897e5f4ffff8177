// Package history persists answered questions in a DuckDB file so the
// frontend can offer a "recently asked" list across restarts.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/studyquery/backend/internal/models"
)

// Store records answered questions in DuckDB.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore opens (or creates) the history database at dbPath. maxEntries
// bounds how many rows are kept; older rows are pruned on insert.
func NewStore(dbPath string, maxEntries int) (*Store, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS answers (
			id          VARCHAR PRIMARY KEY,
			question    VARCHAR NOT NULL,
			kind        VARCHAR NOT NULL,
			answered_at TIMESTAMP NOT NULL,
			elapsed_ms  BIGINT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create answers table: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 500
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Record stores one answered question.
func (s *Store) Record(question string, kind models.AnswerKind, elapsed time.Duration) error {
	entry := models.HistoryEntry{
		ID:         uuid.New().String(),
		Question:   question,
		Kind:       kind,
		AnsweredAt: time.Now(),
		ElapsedMs:  elapsed.Milliseconds(),
	}

	_, err := s.db.Exec(
		`INSERT INTO answers (id, question, kind, answered_at, elapsed_ms) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Question, string(entry.Kind), entry.AnsweredAt, entry.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	// Prune beyond the retention cap
	_, err = s.db.Exec(`
		DELETE FROM answers WHERE id IN (
			SELECT id FROM answers ORDER BY answered_at DESC OFFSET ?
		)
	`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return nil
}

// Recent returns the most recently answered questions, newest first.
func (s *Store) Recent(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > s.maxEntries {
		limit = s.maxEntries
	}

	rows, err := s.db.Query(
		`SELECT id, question, kind, answered_at, elapsed_ms FROM answers ORDER BY answered_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.Question, &kind, &e.AnsweredAt, &e.ElapsedMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Kind = models.AnswerKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
