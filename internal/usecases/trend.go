package usecases

import (
	"sort"
	"time"

	"wellness_checkin/internal/models"
	"wellness_checkin/internal/storage"
)

// AggregateTrend counts entries per (calendar date, mood), oldest date first.
// Entries whose timestamp does not parse are left out.
func AggregateTrend(entries []models.JournalEntry) []models.TrendPoint {
	type key struct{ date, mood string }

	counts := make(map[key]int)
	for _, e := range entries {
		ts, err := time.Parse(storage.TimestampLayout, e.Timestamp)
		if err != nil {
			continue
		}
		counts[key{date: ts.Format(time.DateOnly), mood: e.Mood}]++
	}

	points := make([]models.TrendPoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, models.TrendPoint{Date: k.date, Mood: k.mood, Count: n})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Date != points[j].Date {
			return points[i].Date < points[j].Date
		}
		return points[i].Mood < points[j].Mood
	})

	return points
}
