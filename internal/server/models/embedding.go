package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// JournalEmbedding holds the fixed-dimension vector derived from a journal's
// text. At most one row exists per journal; re-indexing replaces the vector
// wholesale. The row is removed by cascade when the journal is deleted.
type JournalEmbedding struct {
	JournalID string
	Embedding pgvector.Vector
	UpdatedAt time.Time
}
