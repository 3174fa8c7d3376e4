// Package db wires the PostgreSQL connection, schema migrations, and
// repository construction behind a single manager.
package db

import (
	"context"
	"database/sql"

	"github.com/josuelns/authapi/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the shared connection.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
