// Package repomanager wires repository implementations to database handles.
// Services hold a manager plus a *sql.DB and can rebind the same repository
// code to a transaction via dbx.WithTx.
package repomanager

import (
	"github.com/hunterxdhanush/mindful-mentor/internal/dbx"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/embeddings"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/journals"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/repositories/users"
)

// RepositoryManager produces repositories bound to a specific DBTX
// (*sql.DB or *sql.Tx).
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Journals(db dbx.DBTX) journals.Repository
	Embeddings(db dbx.DBTX) embeddings.Repository
}
