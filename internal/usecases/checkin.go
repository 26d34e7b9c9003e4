package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wellness_checkin/internal/models"
	"wellness_checkin/internal/storage"
)

var ErrEmptyEntry = errors.New("entry is empty")

type Analyzer interface {
	Analyze(ctx context.Context, userText string) models.Analysis
}

// CheckinService runs one submission end to end: analyze, then save.
type CheckinService struct {
	analyzer Analyzer
	journal  storage.JournalStore
}

func NewCheckinService(analyzer Analyzer, journal storage.JournalStore) *CheckinService {
	return &CheckinService{analyzer: analyzer, journal: journal}
}

// Submit analyzes text and always records it, with mood "unknown" when the
// analysis failed. The raw text is saved untrimmed.
func (s *CheckinService) Submit(ctx context.Context, text string) (models.Analysis, error) {
	op := "usecases.CheckinService.Submit"

	if strings.TrimSpace(text) == "" {
		return models.Analysis{}, ErrEmptyEntry
	}

	analysis := s.analyzer.Analyze(ctx, text)

	if err := s.journal.Save(ctx, analysis.Result.Mood, text); err != nil {
		return analysis, fmt.Errorf("%s: %w", op, err)
	}

	return analysis, nil
}

func (s *CheckinService) History(ctx context.Context, limit int) (models.History, error) {
	op := "usecases.CheckinService.History"

	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return models.History{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.History{
		Entries: entries,
		Trend:   AggregateTrend(entries),
	}, nil
}
