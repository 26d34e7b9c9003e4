package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wellness_checkin/internal/models"
)

func TestAggregateTrend_SameDay(t *testing.T) {
	entries := []models.JournalEntry{
		{ID: 3, Timestamp: "2024-05-01 21:00:00", Mood: "anxious"},
		{ID: 2, Timestamp: "2024-05-01 12:30:00", Mood: "calm"},
		{ID: 1, Timestamp: "2024-05-01 08:15:00", Mood: "calm"},
	}

	got := AggregateTrend(entries)

	assert.Equal(t, []models.TrendPoint{
		{Date: "2024-05-01", Mood: "anxious", Count: 1},
		{Date: "2024-05-01", Mood: "calm", Count: 2},
	}, got)
}

func TestAggregateTrend_OrdersByDate(t *testing.T) {
	entries := []models.JournalEntry{
		{Timestamp: "2024-05-03 09:00:00", Mood: "happy"},
		{Timestamp: "2024-05-01 09:00:00", Mood: "sad"},
		{Timestamp: "2024-05-02 09:00:00", Mood: "happy"},
		{Timestamp: "garbage", Mood: "happy"},
	}

	got := AggregateTrend(entries)

	assert.Equal(t, []models.TrendPoint{
		{Date: "2024-05-01", Mood: "sad", Count: 1},
		{Date: "2024-05-02", Mood: "happy", Count: 1},
		{Date: "2024-05-03", Mood: "happy", Count: 1},
	}, got)
}

func TestAggregateTrend_Empty(t *testing.T) {
	got := AggregateTrend(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
