package embeddings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

// PostgresRepository implements embedding storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Ranking runs inside PostgreSQL using pgvector's
// cosine distance operator, so the HNSW index can serve it.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert performs a full replacement of the journal's embedding. Two
// concurrent upserts for the same journal race benignly: last write wins,
// and embeddings are derivable, so a stale overwrite self-corrects on the
// next index.
func (r *PostgresRepository) Upsert(ctx context.Context, emb *models.JournalEmbedding) error {
	query := `
		INSERT INTO mindful.journal_embeddings (journal_id, embedding, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (journal_id)
		DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, emb.JournalID, emb.Embedding); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// SearchByOwner returns the owner's journals ranked by ascending cosine
// distance to the query vector. Score is 1 - distance, so 1.0 is a perfect
// match. Ties fall back to the store's natural order.
func (r *PostgresRepository) SearchByOwner(ctx context.Context, userID string, query pgvector.Vector, limit int) ([]models.SearchHit, error) {
	stmt := `
		SELECT j.id, j.title, j.mood_tag, j.created_at,
		       1 - (e.embedding <=> $2) AS score
		FROM mindful.journals j
		JOIN mindful.journal_embeddings e ON e.journal_id = j.id
		WHERE j.user_id = $1
		ORDER BY e.embedding <=> $2 ASC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, stmt, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	hits := []models.SearchHit{}
	for rows.Next() {
		var (
			hit            models.SearchHit
			title, moodTag sql.NullString
		)
		if err := rows.Scan(&hit.JournalID, &title, &moodTag, &hit.CreatedAt, &hit.Score); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		hit.Title = title.String
		hit.MoodTag = moodTag.String
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return hits, nil
}
