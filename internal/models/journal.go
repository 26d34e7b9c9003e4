package models

type JournalEntry struct {
	ID        int64  `json:"id" db:"id"`
	Timestamp string `json:"timestamp" db:"timestamp"`
	Mood      string `json:"mood" db:"mood"`
	Entry     string `json:"entry" db:"entry"`
}

// TrendPoint is the number of entries with one mood on one calendar day.
type TrendPoint struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

type History struct {
	Entries []JournalEntry `json:"entries"`
	Trend   []TrendPoint   `json:"trend"`
}
