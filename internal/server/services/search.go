package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/repomanager"
)

// Search limit bounds. Requests at or below zero fall back to the default;
// requests above the maximum are clamped.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// SearchService answers nearest-neighbor queries over a user's embedded
// journals. The query is embedded with the same capability as the records,
// so distances are comparable.
type SearchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	embedder    Embedder
	logger      logging.Logger
}

// NewSearchService constructs a SearchService.
func NewSearchService(db *sql.DB, m repomanager.RepositoryManager, embedder Embedder, logger logging.Logger) *SearchService {
	return &SearchService{
		db:          db,
		repomanager: m,
		embedder:    embedder,
		logger:      logger.With("module", "search"),
	}
}

// Search ranks the user's embedded journals by similarity to the query and
// returns at most limit hits, closest first. Validation fails fast before
// any remote or storage call.
func (s *SearchService) Search(ctx context.Context, userID, query string, limit int) ([]models.SearchHit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", common.ErrorValidation)
	}
	limit = clampLimit(limit)

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.repomanager.Embeddings(s.db).SearchByOwner(ctx, userID, pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "search completed", "user_id", userID, "hits", len(hits))
	return hits, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
