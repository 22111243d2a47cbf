package journals

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

// PostgresRepository implements journal storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a journal entry. Title and mood tag are stored as NULL
// when empty.
func (r *PostgresRepository) Create(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	query := `
		INSERT INTO mindful.journals (id, user_id, title, content, mood_tag)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), journal.UserID, journal.Title, journal.Content, journal.MoodTag).
		Scan(&journal.ID, &journal.CreatedAt, &journal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return journal, nil
}

// Get returns the journal with the given identifier or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Journal, error) {
	query := `
		SELECT id, user_id, title, content, mood_tag, created_at, updated_at
		FROM mindful.journals
		WHERE id = $1
	`

	journal, err := scanJournal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return journal, nil
}

// ListByUser returns all journals of a user ordered newest-first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Journal, error) {
	query := `
		SELECT id, user_id, title, content, mood_tag, created_at, updated_at
		FROM mindful.journals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Journal{}
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, journal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the journal by identifier.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM mindful.journals WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row rowScanner) (*models.Journal, error) {
	journal := &models.Journal{}
	var title, moodTag sql.NullString

	err := row.Scan(&journal.ID, &journal.UserID, &title, &journal.Content,
		&moodTag, &journal.CreatedAt, &journal.UpdatedAt)
	if err != nil {
		return nil, err
	}

	journal.Title = title.String
	journal.MoodTag = moodTag.String
	return journal, nil
}
