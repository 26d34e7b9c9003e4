package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wellness_checkin/internal/models"
	"wellness_checkin/internal/observability"
)

// TracedJournalStore wraps a store with spans and operation counters.
type TracedJournalStore struct {
	inner   JournalStore
	tracer  trace.Tracer
	metrics *observability.Collector
}

func NewTracedJournalStore(inner JournalStore, tracer trace.Tracer, metrics *observability.Collector) *TracedJournalStore {
	return &TracedJournalStore{inner: inner, tracer: tracer, metrics: metrics}
}

func (t *TracedJournalStore) Init(ctx context.Context) error {
	ctx, span := t.tracer.Start(ctx, "journal.Init")
	defer span.End()

	err := t.inner.Init(ctx)
	t.finish(span, "init", err)
	return err
}

func (t *TracedJournalStore) Save(ctx context.Context, mood, entry string) error {
	ctx, span := t.tracer.Start(ctx, "journal.Save",
		trace.WithAttributes(
			attribute.String("journal.mood", mood),
			attribute.Int("journal.entry_length", len(entry)),
		),
	)
	defer span.End()

	err := t.inner.Save(ctx, mood, entry)
	t.finish(span, "save", err)
	return err
}

func (t *TracedJournalStore) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	ctx, span := t.tracer.Start(ctx, "journal.Recent",
		trace.WithAttributes(attribute.Int("journal.limit", limit)),
	)
	defer span.End()

	entries, err := t.inner.Recent(ctx, limit)
	t.finish(span, "recent", err)
	if err == nil {
		span.SetAttributes(attribute.Int("journal.rows", len(entries)))
	}
	return entries, err
}

func (t *TracedJournalStore) Close() error {
	return t.inner.Close()
}

func (t *TracedJournalStore) finish(span trace.Span, operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if t.metrics != nil {
		t.metrics.JournalOperations.WithLabelValues(operation, status).Inc()
	}
}
