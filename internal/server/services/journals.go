package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/repomanager"
)

// JournalService handles journal persistence. Creation triggers a
// best-effort auto-index; the result reports whether an embedding was
// stored so failures never block journaling.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	indexer     *IndexerService
	logger      logging.Logger
}

// CreatedJournal is the result of Create: the stored journal plus whether
// its embedding was written.
type CreatedJournal struct {
	Journal  *models.Journal
	Embedded bool
}

// NewJournalService constructs a JournalService.
func NewJournalService(db *sql.DB, m repomanager.RepositoryManager, indexer *IndexerService, logger logging.Logger) *JournalService {
	return &JournalService{
		db:          db,
		repomanager: m,
		indexer:     indexer,
		logger:      logger.With("module", "journals"),
	}
}

// Create persists a journal and auto-indexes it best-effort.
func (s *JournalService) Create(ctx context.Context, userID, title, content, moodTag string) (*CreatedJournal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	journal, err := s.repomanager.Journals(s.db).Create(ctx, &models.Journal{
		UserID:  userID,
		Title:   title,
		Content: content,
		MoodTag: moodTag,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating journal: %w", err)
	}

	embedded := s.indexer.AutoIndex(ctx, journal)

	s.logger.Info(ctx, "journal created", "journal_id", journal.ID, "embedded", embedded)
	return &CreatedJournal{Journal: journal, Embedded: embedded}, nil
}

// Get returns a journal by identifier; common.ErrorNotFound when absent.
func (s *JournalService) Get(ctx context.Context, id string) (*models.Journal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: journal id is required", common.ErrorValidation)
	}
	return s.repomanager.Journals(s.db).Get(ctx, id)
}

// List returns the user's journals newest-first.
func (s *JournalService) List(ctx context.Context, userID string) ([]*models.Journal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	return s.repomanager.Journals(s.db).ListByUser(ctx, userID)
}

// Delete removes a journal; its embedding is removed by cascade.
func (s *JournalService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: journal id is required", common.ErrorValidation)
	}
	return s.repomanager.Journals(s.db).Delete(ctx, id)
}
