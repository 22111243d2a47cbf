package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/repomanager"
)

// IndexerService turns a journal's text into a vector and upserts it into
// the embedding store. It is invoked in two contexts with different failure
// policy: IndexJournal (explicit re-index, failures surface to the caller)
// and AutoIndex (on creation, failures are absorbed into a false result
// because journaling must never fail on an unavailable inference provider).
type IndexerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	embedder    Embedder
	logger      logging.Logger
}

// NewIndexerService constructs an IndexerService.
func NewIndexerService(db *sql.DB, m repomanager.RepositoryManager, embedder Embedder, logger logging.Logger) *IndexerService {
	return &IndexerService{
		db:          db,
		repomanager: m,
		embedder:    embedder,
		logger:      logger.With("module", "indexer"),
	}
}

// IndexJournal loads the journal and indexes it. Returns
// common.ErrorNotFound for an unknown id and common.ErrorNothingToEmbed
// when title and content are both blank.
func (s *IndexerService) IndexJournal(ctx context.Context, journalID string) error {
	journal, err := s.repomanager.Journals(s.db).Get(ctx, journalID)
	if err != nil {
		return err
	}
	return s.embedAndStore(ctx, journal)
}

// AutoIndex indexes an already-loaded journal on a best-effort basis and
// reports whether an embedding was stored. It never returns an error.
func (s *IndexerService) AutoIndex(ctx context.Context, journal *models.Journal) bool {
	if err := s.embedAndStore(ctx, journal); err != nil {
		s.logger.Warn(ctx, "auto-index skipped", "journal_id", journal.ID, "reason", err.Error())
		return false
	}
	return true
}

func (s *IndexerService) embedAndStore(ctx context.Context, journal *models.Journal) error {
	text := EmbeddableText(journal.Title, journal.Content)
	if text == "" {
		return common.ErrorNothingToEmbed
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}

	// The journal may have been deleted during the remote call. Re-check and
	// write in one transaction so that case surfaces as not-found instead of
	// a foreign key violation.
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Journals(tx).Get(ctx, journal.ID); err != nil {
			return err
		}
		return s.repomanager.Embeddings(tx).Upsert(ctx, &models.JournalEmbedding{
			JournalID: journal.ID,
			Embedding: pgvector.NewVector(vec),
		})
	})
}

// EmbeddableText joins title and content with a blank line and trims the
// surrounding whitespace. An empty result means there is nothing to embed.
func EmbeddableText(title, content string) string {
	return strings.TrimSpace(title + "\n\n" + content)
}
