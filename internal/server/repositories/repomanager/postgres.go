package repomanager

import (
	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/embeddings"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/journals"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/users"
)

// PostgresRepositoryManager builds PostgreSQL repository implementations.
type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Journals(db dbx.DBTX) journals.Repository {
	return journals.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Embeddings(db dbx.DBTX) embeddings.Repository {
	return embeddings.NewPostgresRepository(db)
}
