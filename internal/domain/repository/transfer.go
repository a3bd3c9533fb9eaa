package repository

import (
	"context"

	"github.com/bnema/dtabridge/internal/domain/entity"
)

//go:generate mockgen -source=transfer.go -destination=mocks/mock_transfer.go -package=mocks

// TransferRepository persists the transfer journal.
type TransferRepository interface {
	// Save inserts the record or replaces the stored one with the same ID.
	Save(ctx context.Context, record *entity.TransferRecord) error

	// FindByID returns nil when no record exists.
	FindByID(ctx context.Context, id string) (*entity.TransferRecord, error)

	// GetRecent returns up to limit records, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.TransferRecord, error)

	// DeleteOlderThan prunes finished records last updated before the cutoff (unix millis).
	DeleteOlderThan(ctx context.Context, cutoffMillis int64) (int64, error)
}
