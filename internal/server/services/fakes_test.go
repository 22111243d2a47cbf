package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pgvector/pgvector-go"

	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	embeddingsrepo "github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/embeddings"
	journalsrepo "github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/journals"
	usersrepo "github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/users"

	"log/slog"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

type fakeUsersRepo struct {
	upsertOut *models.User
	upsertErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Upsert(ctx context.Context, email, displayName string) (*models.User, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return f.upsertOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeJournalsRepo struct {
	createErr error

	getOut           *models.Journal
	getErr           error
	getErrAfterFirst error
	getCalls         int

	listOut []*models.Journal
	listErr error

	delErr error
}

func (f *fakeJournalsRepo) Create(ctx context.Context, j *models.Journal) (*models.Journal, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	j.ID = "j-created"
	return j, nil
}

func (f *fakeJournalsRepo) Get(ctx context.Context, id string) (*models.Journal, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getErrAfterFirst != nil && f.getCalls > 1 {
		return nil, f.getErrAfterFirst
	}
	return f.getOut, nil
}

func (f *fakeJournalsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Journal, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeJournalsRepo) Delete(ctx context.Context, id string) error {
	return f.delErr
}

type fakeEmbeddingsRepo struct {
	upsertErr   error
	upsertCalls int
	lastID      string
	lastVector  pgvector.Vector

	searchOut   []models.SearchHit
	searchErr   error
	searchCalls int
	lastLimit   int
}

func (f *fakeEmbeddingsRepo) Upsert(ctx context.Context, emb *models.JournalEmbedding) error {
	f.upsertCalls++
	f.lastID = emb.JournalID
	f.lastVector = emb.Embedding
	return f.upsertErr
}

func (f *fakeEmbeddingsRepo) SearchByOwner(ctx context.Context, userID string, query pgvector.Vector, limit int) ([]models.SearchHit, error) {
	f.searchCalls++
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	j *fakeJournalsRepo
	e *fakeEmbeddingsRepo

	// whether the most recent bind was a *sql.Tx
	journalsInTx   bool
	embeddingsInTx bool
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	return m.u
}

func (m *fakeRepoManager) Journals(db dbx.DBTX) journalsrepo.Repository {
	_, m.journalsInTx = db.(*sql.Tx)
	return m.j
}

func (m *fakeRepoManager) Embeddings(db dbx.DBTX) embeddingsrepo.Repository {
	_, m.embeddingsInTx = db.(*sql.Tx)
	return m.e
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

type fakeClassifier struct {
	out   inference.Sentiment
	err   error
	calls int
}

func (f *fakeClassifier) ClassifySentiment(ctx context.Context, text string) (inference.Sentiment, error) {
	f.calls++
	if f.err != nil {
		return inference.Sentiment{}, f.err
	}
	return f.out, nil
}
