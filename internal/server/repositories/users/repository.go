// Package users provides PostgreSQL-backed persistence for owner identities.
package users

import (
	"context"

	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

// Repository is the storage contract for users.
type Repository interface {
	// Upsert creates a user keyed by email, or updates the display name of
	// an existing one. It never fails on re-registration.
	Upsert(ctx context.Context, email, displayName string) (*models.User, error)

	// GetByID returns the user or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
