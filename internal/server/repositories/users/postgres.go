package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts a user or, on an email conflict, refreshes the display name
// and updated_at. The returned user carries the stored identifier either way.
func (r *PostgresRepository) Upsert(ctx context.Context, email, displayName string) (*models.User, error) {
	query := `
		INSERT INTO mindful.users (id, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
		RETURNING id, email, display_name, created_at, updated_at
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), email, displayName).
		Scan(&user.ID, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByID returns the user with the given identifier or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, created_at, updated_at FROM mindful.users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
