package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS custom_dictionary (
		id TEXT PRIMARY KEY,
		old_word TEXT NOT NULL UNIQUE,
		modern_word TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// SQLite is the local flavor of the dictionary store. Schema is created
// on open, no separate migration step.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "dictionary.db"
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	return &SQLite{db: sqlDB}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) UpsertEntry(ctx context.Context, oldWord, modernWord, description string) error {
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_dictionary (
			id,
			old_word,
			modern_word,
			description,
			created_at,
			updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (old_word) DO UPDATE
		SET modern_word = excluded.modern_word,
			description = excluded.description,
			updated_at = excluded.updated_at
	`, uuid.NewString(), oldWord, modernWord, description, now, now)
	if err != nil {
		return fmt.Errorf("upsertEntry: %w", err)
	}

	return nil
}

func (s *SQLite) GetEntry(ctx context.Context, oldWord string) (*DictionaryEntry, error) {
	var entry DictionaryEntry
	var id string

	err := s.db.QueryRowContext(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			description,
			created_at,
			updated_at
		FROM custom_dictionary
		WHERE old_word = ?
	`, oldWord).Scan(
		&id,
		&entry.OldWord,
		&entry.ModernWord,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getEntry: %w", parseErr(err))
	}

	entry.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry id: %w", err)
	}

	return &entry, nil
}

func (s *SQLite) DeleteEntry(ctx context.Context, oldWord string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM custom_dictionary
		WHERE old_word = ?
	`, oldWord)
	if err != nil {
		return false, fmt.Errorf("deleteEntry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleteEntry rows affected: %w", err)
	}

	return affected > 0, nil
}

func (s *SQLite) scanEntries(rows *sql.Rows) ([]DictionaryEntry, error) {
	defer rows.Close()

	var entries []DictionaryEntry

	for rows.Next() {
		var entry DictionaryEntry
		var id string

		err := rows.Scan(
			&id,
			&entry.OldWord,
			&entry.ModernWord,
			&entry.Description,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dictionary entry: %w", err)
		}

		entry.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry id: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary entries: %w", err)
	}

	return entries, nil
}

func (s *SQLite) ListEntries(ctx context.Context) ([]DictionaryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			description,
			created_at,
			updated_at
		FROM custom_dictionary
		ORDER BY old_word
	`)
	if err != nil {
		return nil, fmt.Errorf("listEntries: %w", parseErr(err))
	}

	return s.scanEntries(rows)
}

func (s *SQLite) SearchEntries(ctx context.Context, term string) ([]DictionaryEntry, error) {
	// sqlite LIKE is already case-insensitive for ASCII; lower() keeps
	// behavior close to the postgres ILIKE query
	pattern := "%" + strings.ToLower(term) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			description,
			created_at,
			updated_at
		FROM custom_dictionary
		WHERE lower(old_word) LIKE ? OR lower(modern_word) LIKE ?
		ORDER BY old_word
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searchEntries: %w", parseErr(err))
	}

	return s.scanEntries(rows)
}

func (s *SQLite) LoadMappings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT old_word, modern_word
		FROM custom_dictionary
	`)
	if err != nil {
		return nil, fmt.Errorf("loadMappings: %w", parseErr(err))
	}
	defer rows.Close()

	mappings := map[string]string{}

	for rows.Next() {
		var oldWord, modernWord string
		if err := rows.Scan(&oldWord, &modernWord); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}

		mappings[oldWord] = modernWord
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mappings: %w", err)
	}

	return mappings, nil
}
