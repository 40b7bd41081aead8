package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
)

// InMemoryRepositoryManager keeps the catalog in process memory. It has no
// schema and no connection.
type InMemoryRepositoryManager struct {
	catalog *catalog.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{catalog: catalog.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Catalog() catalog.Repository { return m.catalog }

func (m *InMemoryRepositoryManager) Conn() *sql.DB { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }

// Open returns the PostgreSQL manager when dsn is set and the in-memory one
// otherwise. Migrations are applied before returning.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	var m RepositoryManager = NewInMemoryRepositoryManager()
	if dsn != "" {
		pm, err := NewPostgresRepositoryManager(ctx, dsn)
		if err != nil {
			return nil, err
		}
		m = pm
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}
