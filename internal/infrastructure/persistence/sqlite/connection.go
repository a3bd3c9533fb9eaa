package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // database/sql driver "sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"  // bundled SQLite WASM build

	"github.com/bnema/dtabridge/internal/logging"
)

const journalDirPerm = 0o750

// journalPragmas are applied by the driver on every new connection.
// WAL lets hosts of several browser profiles share the file.
var journalPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(wal)",
	"synchronous(normal)",
	"temp_store(memory)",
}

// journalDSN turns a file path into a driver URI carrying journalPragmas.
func journalDSN(dbPath string) string {
	q := url.Values{"_pragma": journalPragmas}
	return "file:" + filepath.ToSlash(dbPath) + "?" + q.Encode()
}

// NewConnection opens the journal at dbPath and migrates it. The parent
// directory is created when missing.
func NewConnection(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), journalDirPerm); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", journalDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One writer, held for the life of the browser port.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("path", dbPath).Msg("journal database opened")
	return db, nil
}
