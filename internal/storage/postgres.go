package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wellness_checkin/internal/models"
)

type PostgresJournalStorage struct {
	pool *pgxpool.Pool
	now  clock
}

func NewPostgresJournalStorage(pool *pgxpool.Pool) *PostgresJournalStorage {
	return &PostgresJournalStorage{
		pool: pool,
		now:  time.Now,
	}
}

func (db_js *PostgresJournalStorage) Init(ctx context.Context) error {
	op := "internal/storage/postgres.go Init"

	sql_query := `
	CREATE TABLE IF NOT EXISTS journal (
		id BIGSERIAL PRIMARY KEY,
		"timestamp" TEXT,
		mood TEXT,
		entry TEXT
	);
	`

	if _, err := db_js.pool.Exec(ctx, sql_query); err != nil {
		return fmt.Errorf("Failure to create journal table in %s: %w", op, err)
	}

	return nil
}

func (db_js *PostgresJournalStorage) Save(ctx context.Context, mood, entry string) error {
	op := "internal/storage/postgres.go Save"

	sql_query := `
	INSERT INTO journal
	("timestamp", mood, entry)
	VALUES ($1, $2, $3);
	`

	_, err := db_js.pool.Exec(
		ctx,
		sql_query,
		db_js.now().Format(TimestampLayout),
		mood,
		entry,
	)

	if err != nil {
		return fmt.Errorf("Failure to save entry in %s: %w", op, err)
	}

	return nil
}

func (db_js *PostgresJournalStorage) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	op := "internal/storage/postgres.go Recent"

	entries := []models.JournalEntry{}
	if limit <= 0 {
		return entries, nil
	}

	sql_query := `
	SELECT id, "timestamp", mood, entry FROM journal
	ORDER BY id DESC
	LIMIT $1;
	`

	rows, err := db_js.pool.Query(ctx, sql_query, limit)

	if err != nil {
		return nil, fmt.Errorf("Failure to get entries in %s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry := models.JournalEntry{}

		err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Mood,
			&entry.Entry,
		)

		if err != nil {
			return nil, fmt.Errorf("Failure to Scan entries in %s: %w", op, err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failure to read entries in %s: %w", op, err)
	}

	return entries, nil
}

// Close releases the pool.
func (db_js *PostgresJournalStorage) Close() error {
	db_js.pool.Close()
	return nil
}
