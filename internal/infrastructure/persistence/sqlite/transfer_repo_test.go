package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/domain/repository"
	"github.com/bnema/dtabridge/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dtabridge/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newTransferRepo(t *testing.T) repository.TransferRepository {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewTransferRepository(db)
}

func TestTransferRepository_SaveAndFind(t *testing.T) {
	ctx := testCtx()
	repo := newTransferRepo(t)

	started := time.UnixMilli(1_700_000_000_000)
	rec := &entity.TransferRecord{
		ID:        "a",
		URL:       "https://example.com/f.zip",
		Path:      "/tmp/dtabridge-1.zip",
		State:     entity.TransferRunning,
		StartedAt: started,
		UpdatedAt: started,
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.TransferRunning, got.State)
	assert.Nil(t, got.Total)
	assert.True(t, got.StartedAt.Equal(started))

	total := int64(4096)
	rec.State = entity.TransferDone
	rec.Downloaded = 4096
	rec.Total = &total
	rec.FinalURL = "https://cdn.example.com/f.zip"
	rec.Status = 200
	rec.UpdatedAt = started.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, rec))

	got, err = repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferDone, got.State)
	require.NotNil(t, got.Total)
	assert.Equal(t, int64(4096), *got.Total)
	assert.Equal(t, "https://cdn.example.com/f.zip", got.FinalURL)
	assert.Equal(t, 200, got.Status)
	assert.True(t, got.StartedAt.Equal(started), "start time survives updates")
	assert.InDelta(t, 1.0, got.Progress(), 0.0001)
}

func TestTransferRepository_FindMissing(t *testing.T) {
	got, err := newTransferRepo(t).FindByID(testCtx(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransferRepository_RejectsInvalid(t *testing.T) {
	err := newTransferRepo(t).Save(testCtx(), &entity.TransferRecord{ID: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidTransfer)
}

func TestTransferRepository_GetRecentAndPrune(t *testing.T) {
	ctx := testCtx()
	repo := newTransferRepo(t)

	base := time.UnixMilli(1_700_000_000_000)
	for i, state := range []entity.TransferState{entity.TransferDone, entity.TransferErrored, entity.TransferRunning} {
		at := base.Add(time.Duration(i) * time.Hour)
		rec := &entity.TransferRecord{
			ID:        string(rune('a' + i)),
			URL:       "https://example.com",
			State:     state,
			StartedAt: at,
			UpdatedAt: at,
		}
		if state == entity.TransferErrored {
			rec.Error = "unexpected status 404"
		}
		require.NoError(t, repo.Save(ctx, rec))
	}

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, "unexpected status 404", recent[1].Error)

	none, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	// Everything is older than the cutoff, but the running record is kept.
	deleted, err := repo.DeleteOlderThan(ctx, base.Add(10*time.Hour).UnixMilli())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c", left[0].ID)
}
