// Package embeddings provides PostgreSQL/pgvector-backed persistence for
// journal embeddings and the ranked similarity scan behind semantic search.
package embeddings

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

// Repository is the storage contract for journal embeddings.
type Repository interface {
	// Upsert inserts the embedding for a journal or replaces it wholesale,
	// refreshing updated_at. Keyed on the unique journal reference;
	// emb.UpdatedAt is ignored, the store sets its own timestamp.
	Upsert(ctx context.Context, emb *models.JournalEmbedding) error

	// SearchByOwner ranks the owner's embedded journals by cosine distance
	// to the query vector and returns at most limit hits, closest first.
	// Journals without an embedding are excluded by the inner join.
	SearchByOwner(ctx context.Context, userID string, query pgvector.Vector, limit int) ([]models.SearchHit, error)
}
