package storage

import (
	"context"
	"time"

	"wellness_checkin/internal/models"
)

// TimestampLayout is the second-precision format stored in the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// JournalStore is the append-only mood journal. Entries are never updated or
// deleted.
type JournalStore interface {
	// Init creates the journal table if it does not exist yet.
	Init(ctx context.Context) error
	// Save stamps the entry with the current time and commits it before returning.
	Save(ctx context.Context, mood, entry string) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.JournalEntry, error)
	Close() error
}

type clock func() time.Time
