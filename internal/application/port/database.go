package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the journal connection, possibly opening it
// on first use.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
	// Opened is false until DB has succeeded once.
	Opened() bool
}
