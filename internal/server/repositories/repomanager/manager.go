package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/arcaives/internal/dbx"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories/arcaives"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/arcaives/internal/server/repositories/memos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Arcaives(db dbx.DBTX) arcaives.Repository
	Memos(db dbx.DBTX) memos.Repository
	Contacts(db dbx.DBTX) contacts.Repository
}
