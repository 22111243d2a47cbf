package models

import "time"

// Journal is a free-text entry belonging to exactly one user. Title and
// MoodTag are optional; Content is required.
type Journal struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	MoodTag   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchHit is one ranked result of a semantic search: a journal summary
// plus a similarity score where 1.0 is a perfect match.
type SearchHit struct {
	JournalID string
	Title     string
	MoodTag   string
	CreatedAt time.Time
	Score     float64
}
