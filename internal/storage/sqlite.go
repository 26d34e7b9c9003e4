package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"wellness_checkin/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS journal (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT,
	mood TEXT,
	entry TEXT
)`

// SQLiteJournalStorage keeps the journal in a local SQLite file. It holds a
// single connection, so writes from concurrent handlers are serialized.
type SQLiteJournalStorage struct {
	db  *sql.DB
	now clock
}

func OpenSQLite(path string) (*SQLiteJournalStorage, error) {
	op := "storage.OpenSQLite"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: create db dir: %w", op, err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", op, err)
	}
	db.SetMaxOpenConns(1)

	return &SQLiteJournalStorage{db: db, now: time.Now}, nil
}

func (s *SQLiteJournalStorage) Init(ctx context.Context) error {
	op := "storage.SQLiteJournalStorage.Init"

	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQLiteJournalStorage) Save(ctx context.Context, mood, entry string) error {
	op := "storage.SQLiteJournalStorage.Save"

	ts := s.now().Format(TimestampLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal (timestamp, mood, entry) VALUES (?, ?, ?)`,
		ts, mood, entry,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQLiteJournalStorage) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	op := "storage.SQLiteJournalStorage.Recent"

	entries := []models.JournalEntry{}
	if limit <= 0 {
		return entries, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, mood, entry FROM journal ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Mood, &e.Entry); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (s *SQLiteJournalStorage) Close() error {
	return s.db.Close()
}
