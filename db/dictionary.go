package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (db *DB) UpsertEntry(ctx context.Context, oldWord, modernWord, description string) error {
	_, err := db.Exec(ctx, `
		INSERT INTO custom_dictionary (
			old_word,
			modern_word,
			description
		)
		VALUES ($1, $2, $3)
		ON CONFLICT (old_word) DO UPDATE
		SET modern_word = excluded.modern_word,
			description = excluded.description,
			updated_at = now()
	`, oldWord, modernWord, description)
	if err != nil {
		return fmt.Errorf("upsertEntry: %w", err)
	}

	return nil
}

func (db *DB) GetEntry(ctx context.Context, oldWord string) (*DictionaryEntry, error) {
	var entry DictionaryEntry

	err := db.QueryRow(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			coalesce(description, ''),
			created_at,
			updated_at
		FROM custom_dictionary
		WHERE old_word = $1
	`, oldWord).Scan(
		&entry.ID,
		&entry.OldWord,
		&entry.ModernWord,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getEntry: %w", parseErr(err))
	}

	return &entry, nil
}

func (db *DB) DeleteEntry(ctx context.Context, oldWord string) (bool, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM custom_dictionary
		WHERE old_word = $1
	`, oldWord)
	if err != nil {
		return false, fmt.Errorf("deleteEntry: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanEntries(rows pgx.Rows) ([]DictionaryEntry, error) {
	defer rows.Close()

	var entries []DictionaryEntry

	for rows.Next() {
		var entry DictionaryEntry

		err := rows.Scan(
			&entry.ID,
			&entry.OldWord,
			&entry.ModernWord,
			&entry.Description,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dictionary entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary entries: %w", err)
	}

	return entries, nil
}

func (db *DB) ListEntries(ctx context.Context) ([]DictionaryEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			coalesce(description, ''),
			created_at,
			updated_at
		FROM custom_dictionary
		ORDER BY old_word
	`)
	if err != nil {
		return nil, fmt.Errorf("listEntries: %w", parseErr(err))
	}

	return scanEntries(rows)
}

func (db *DB) SearchEntries(ctx context.Context, term string) ([]DictionaryEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT
			id,
			old_word,
			modern_word,
			coalesce(description, ''),
			created_at,
			updated_at
		FROM custom_dictionary
		WHERE old_word ILIKE $1 OR modern_word ILIKE $1
		ORDER BY old_word
	`, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("searchEntries: %w", parseErr(err))
	}

	return scanEntries(rows)
}

func (db *DB) LoadMappings(ctx context.Context) (map[string]string, error) {
	rows, err := db.Query(ctx, `
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
