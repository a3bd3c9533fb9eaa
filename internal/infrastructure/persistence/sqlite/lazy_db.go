package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

// LazyDB opens the journal on the first DB call. Hosts that only answer
// preroll or stat_path never compile the SQLite module. A failed open is
// remembered and returned to every later caller.
type LazyDB struct {
	path string

	mu     sync.Mutex
	db     *sql.DB
	err    error
	tried  bool
	closed bool
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("journal %s is closed", l.path)
	}
	if !l.tried {
		l.tried = true
		logging.FromContext(ctx).Debug().Str("path", l.path).Msg("opening journal on first use")
		l.db, l.err = NewConnection(ctx, l.path)
		if l.err != nil {
			logging.FromContext(ctx).Error().Err(l.err).Msg("journal unavailable")
		}
	}
	if l.err != nil {
		return nil, fmt.Errorf("journal unavailable: %w", l.err)
	}
	return l.db, nil
}

// Opened reports whether a connection was established this session.
func (l *LazyDB) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil && !l.closed
}

func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.db == nil {
		l.closed = true
		return nil
	}
	l.closed = true
	return l.db.Close()
}

func (l *LazyDB) Path() string { return l.path }
