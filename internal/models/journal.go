package models

import "time"

// JournalEntry is one saved journal record. The persisted JSON shape
// mirrors what the client stores, so field names stay camelCase and
// timestamps serialize as RFC 3339 strings.
type JournalEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Mood    string    `json:"mood"`
}
