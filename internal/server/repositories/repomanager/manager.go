// Package repomanager hands out repositories bound to a *sql.DB or a
// transaction, so services can run any repo call inside dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
