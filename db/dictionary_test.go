package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"app/db"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) db.DictionaryStore {
	t.Helper()

	store, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestUpsertAndList(t *testing.T) {
	assert := require.New(t)

	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(store.UpsertEntry(ctx, "யான்", "நான்", "archaic first person"))
	assert.NoError(store.UpsertEntry(ctx, "ஞாலம்", "உலகம்", ""))

	entries, err := store.ListEntries(ctx)
	assert.NoError(err)
	assert.Len(entries, 2)

	// ordered by old_word
	assert.Equal("ஞாலம்", entries[0].OldWord)
	assert.Equal("உலகம்", entries[0].ModernWord)
	assert.Equal("யான்", entries[1].OldWord)
	assert.NotEqual(entries[0].ID, entries[1].ID)

	// upsert overwrites the modern word and keeps a single row
	assert.NoError(store.UpsertEntry(ctx, "யான்", "நானே", "updated"))

	entries, err = store.ListEntries(ctx)
	assert.NoError(err)
	assert.Len(entries, 2)
	assert.Equal("நானே", entries[1].ModernWord)
	assert.Equal("updated", entries[1].Description)
}

func TestGetEntry(t *testing.T) {
	assert := require.New(t)

	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(store.UpsertEntry(ctx, "யான்", "நான்", "archaic first person"))

	entry, err := store.GetEntry(ctx, "யான்")
	assert.NoError(err)
	assert.Equal("யான்", entry.OldWord)
	assert.Equal("நான்", entry.ModernWord)
	assert.Equal("archaic first person", entry.Description)
	assert.NotEmpty(entry.ID)

	_, err = store.GetEntry(ctx, "missing")
	assert.Error(err)
	assert.Equal(db.ErrCodeNoRows, db.ErrCode(err))
}

func TestDeleteEntry(t *testing.T) {
	assert := require.New(t)

	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(store.UpsertEntry(ctx, "யான்", "நான்", ""))

	found, err := store.DeleteEntry(ctx, "யான்")
	assert.NoError(err)
	assert.True(found)

	found, err = store.DeleteEntry(ctx, "யான்")
	assert.NoError(err)
	assert.False(found)

	entries, err := store.ListEntries(ctx)
	assert.NoError(err)
	assert.Empty(entries)
}

func TestSearchEntries(t *testing.T) {
	assert := require.New(t)

	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(store.UpsertEntry(ctx, "யான்", "நான்", ""))
	assert.NoError(store.UpsertEntry(ctx, "ஞாலம்", "உலகம்", ""))
	assert.NoError(store.UpsertEntry(ctx, "old", "new", ""))

	entries, err := store.SearchEntries(ctx, "ஞால")
	assert.NoError(err)
	assert.Len(entries, 1)
	assert.Equal("ஞாலம்", entries[0].OldWord)

	// matches the modern side too
	entries, err = store.SearchEntries(ctx, "new")
	assert.NoError(err)
	assert.Len(entries, 1)
	assert.Equal("old", entries[0].OldWord)

	entries, err = store.SearchEntries(ctx, "nothing")
	assert.NoError(err)
	assert.Empty(entries)
}

func TestLoadMappings(t *testing.T) {
	assert := require.New(t)

	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(store.UpsertEntry(ctx, "யான்", "நான்", ""))
	assert.NoError(store.UpsertEntry(ctx, "ஞாலம்", "உலகம்", ""))

	mappings, err := store.LoadMappings(ctx)
	assert.NoError(err)
	assert.Equal(map[string]string{
		"யான்":  "நான்",
		"ஞாலம்": "உலகம்",
	}, mappings)
}
