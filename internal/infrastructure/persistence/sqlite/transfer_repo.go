package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/domain/repository"
	"github.com/bnema/dtabridge/internal/logging"
)

const (
	upsertTransferSQL = `
INSERT INTO transfers (id, url, final_url, path, downloaded, total, state, status, error, started_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    final_url  = excluded.final_url,
    path       = excluded.path,
    downloaded = excluded.downloaded,
    total      = excluded.total,
    state      = excluded.state,
    status     = excluded.status,
    error      = excluded.error,
    updated_at = excluded.updated_at`

	selectTransferColumns = `id, url, final_url, path, downloaded, total, state, status, error, started_at, updated_at`

	getTransferSQL = `SELECT ` + selectTransferColumns + ` FROM transfers WHERE id = ?`

	recentTransfersSQL = `SELECT ` + selectTransferColumns + ` FROM transfers ORDER BY updated_at DESC, id LIMIT ?`

	deleteOldTransfersSQL = `DELETE FROM transfers WHERE updated_at < ? AND state IN ('done', 'cancelled', 'errored')`
)

type transferRepo struct {
	db *sql.DB
}

// NewTransferRepository creates a new SQLite-backed transfer journal.
func NewTransferRepository(db *sql.DB) repository.TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Save(ctx context.Context, record *entity.TransferRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().
		Str("transfer_id", record.ID).
		Str("state", string(record.State)).
		Msg("saving transfer record")

	updated := record.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	started := record.StartedAt
	if started.IsZero() {
		started = updated
	}

	_, err := r.db.ExecContext(ctx, upsertTransferSQL,
		record.ID,
		record.URL,
		record.FinalURL,
		record.Path,
		record.Downloaded,
		nullInt64(record.Total),
		string(record.State),
		record.Status,
		record.Error,
		started.UnixMilli(),
		updated.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save transfer %s: %w", record.ID, err)
	}
	return nil
}

func (r *transferRepo) FindByID(ctx context.Context, id string) (*entity.TransferRecord, error) {
	rec, err := scanTransfer(r.db.QueryRowContext(ctx, getTransferSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (r *transferRepo) GetRecent(ctx context.Context, limit int) ([]*entity.TransferRecord, error) {
	if limit <= 0 {
		return []*entity.TransferRecord{}, nil
	}
	rows, err := r.db.QueryContext(ctx, recentTransfersSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entity.TransferRecord, 0, limit)
	for rows.Next() {
		rec, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *transferRepo) DeleteOlderThan(ctx context.Context, cutoffMillis int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteOldTransfersSQL, cutoffMillis)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row rowScanner) (*entity.TransferRecord, error) {
	var (
		rec              entity.TransferRecord
		state            string
		total            sql.NullInt64
		started, updated int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.URL,
		&rec.FinalURL,
		&rec.Path,
		&rec.Downloaded,
		&total,
		&state,
		&rec.Status,
		&rec.Error,
		&started,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	rec.State = entity.TransferState(state)
	if total.Valid {
		rec.Total = &total.Int64
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.UpdatedAt = time.UnixMilli(updated)
	return &rec, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
