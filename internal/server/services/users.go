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

// UserService handles owner identities. Registration is an upsert by email:
// re-registering the same address updates the display name instead of
// erroring.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "users"),
	}
}

// RegisterOrUpdate upserts a user by email.
func (s *UserService) RegisterOrUpdate(ctx context.Context, email, displayName string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, fmt.Errorf("%w: display name is required", common.ErrorValidation)
	}

	user, err := s.repomanager.Users(s.db).Upsert(ctx, email, displayName)
	if err != nil {
		return nil, fmt.Errorf("error upserting user: %w", err)
	}

	s.logger.Debug(ctx, "user upserted", "user_id", user.ID)
	return user, nil
}

// Get returns the user by identifier; common.ErrorNotFound when absent.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
