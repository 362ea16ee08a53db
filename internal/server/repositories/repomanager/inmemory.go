package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bailbridge/internal/dbx"
	"github.com/dmitrijs2005/bailbridge/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out a single process-wide directory and
// ignores the database handle.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}
