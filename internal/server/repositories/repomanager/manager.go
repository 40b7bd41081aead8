package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
)

// RepositoryManager opens the catalog storage backend and vends its
// repository.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Catalog() catalog.Repository
	Conn() *sql.DB
	Close() error
}
