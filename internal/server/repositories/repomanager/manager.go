package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/features"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/users"
	"github.com/dmitrijs2005/featurevote/internal/server/repositories/votes"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// service code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Features(db dbx.DBTX) features.Repository
	Votes(db dbx.DBTX) votes.Repository
}
