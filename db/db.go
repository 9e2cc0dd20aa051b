// Package db stores user supplied dictionary entries. Production runs on
// postgres; a file-backed sqlite store covers local development and
// tests through the same interface.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver  string `yaml:"driver"`
	ConnStr string `yaml:"conn_str"`

	// Path to the sqlite file when driver is "sqlite".
	Path string `yaml:"path"`
}

// DictionaryEntry is one classical-to-modern override added by a user on
// top of the embedded dictionary.
type DictionaryEntry struct {
	ID uuid.UUID `json:"id"`

	OldWord     string `json:"old_word"`
	ModernWord  string `json:"modern_word"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DictionaryStore interface {
	UpsertEntry(ctx context.Context, oldWord, modernWord, description string) error
	GetEntry(ctx context.Context, oldWord string) (*DictionaryEntry, error)
	DeleteEntry(ctx context.Context, oldWord string) (bool, error)
	ListEntries(ctx context.Context) ([]DictionaryEntry, error)
	SearchEntries(ctx context.Context, term string) ([]DictionaryEntry, error)

	// LoadMappings returns all entries as an old->modern map for
	// merging into the base dictionary.
	LoadMappings(ctx context.Context) (map[string]string, error)

	Close() error
}

// NewStore picks the store implementation from the config. An empty
// driver means postgres.
func NewStore(ctx context.Context, cfg *Config) (DictionaryStore, error) {
	switch cfg.Driver {
	case "", "postgres":
		return New(ctx, cfg)
	case "sqlite":
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.Driver)
	}
}

type DB struct {
	*pgxpool.Pool
}

func New(ctx context.Context, cfg *Config) (*DB, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	db := &DB{
		Pool: pool,
	}

	return db, nil
}

func (db *DB) Close() error {
	db.Pool.Close()

	return nil
}
