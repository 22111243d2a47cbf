// Package journals provides PostgreSQL-backed persistence for journal
// entries.
package journals

import (
	"context"

	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

// Repository is the storage contract for journal entries.
type Repository interface {
	// Create persists a new journal and returns it with generated fields.
	Create(ctx context.Context, journal *models.Journal) (*models.Journal, error)

	// Get returns the journal or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Journal, error)

	// ListByUser returns the user's journals newest-first.
	ListByUser(ctx context.Context, userID string) ([]*models.Journal, error)

	// Delete removes the journal; its embedding goes with it via cascade.
	// Returns common.ErrorNotFound when no row was deleted.
	Delete(ctx context.Context, id string) error
}
