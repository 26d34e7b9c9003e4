package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteJournalStorage {
	t.Helper()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestSQLite_SaveThenRecent(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	before := time.Now().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, "calm", "  went for a walk\n"))
	after := time.Now()

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "calm", got.Mood)
	assert.Equal(t, "  went for a walk\n", got.Entry, "entry is stored verbatim")

	ts, err := time.ParseInLocation(TimestampLayout, got.Timestamp, time.Local)
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after))
}

func TestSQLite_RecentEmpty(t *testing.T) {
	store := newTestSQLite(t)

	entries, err := store.Recent(context.Background(), 20)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSQLite_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	for _, text := range []string{"E1", "E2", "E3"} {
		require.NoError(t, store.Save(ctx, "calm", text))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "E3", entries[0].Entry)
	assert.Equal(t, "E2", entries[1].Entry)
	assert.Greater(t, entries[0].ID, entries[1].ID)

	all, err := store.Recent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLite_RecentNonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	require.NoError(t, store.Save(ctx, "calm", "x"))

	entries, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLite_InitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	require.NoError(t, store.Save(ctx, "anxious", "exam tomorrow"))

	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Init(ctx))

	var tables int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'journal'`,
	).Scan(&tables))
	assert.Equal(t, 1, tables)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "exam tomorrow", entries[0].Entry)
}

func TestSQLite_AcceptsAnyEntry(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	long := strings.Repeat("a", 100_000)
	require.NoError(t, store.Save(ctx, "", ""))
	require.NoError(t, store.Save(ctx, "unknown", long))

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, long, entries[0].Entry)
	assert.Equal(t, "", entries[1].Mood)
}

func TestSQLite_UsesClock(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	store.now = func() time.Time { return time.Date(2024, 3, 9, 7, 5, 3, 999, time.Local) }

	require.NoError(t, store.Save(ctx, "happy", "sunny"))

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-09 07:05:03", entries[0].Timestamp)
}
