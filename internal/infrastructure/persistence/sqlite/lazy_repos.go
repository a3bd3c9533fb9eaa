package sqlite

import (
	"context"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/domain/repository"
)

// LazyTransferRepository defers opening the journal to the first query.
type LazyTransferRepository struct {
	provider port.DatabaseProvider
}

var _ repository.TransferRepository = (*LazyTransferRepository)(nil)

func NewLazyTransferRepository(provider port.DatabaseProvider) repository.TransferRepository {
	return &LazyTransferRepository{provider: provider}
}

// resolve returns a repository over the provider's connection. The provider
// memoizes the connection, so this is cheap after the first call.
func (r *LazyTransferRepository) resolve(ctx context.Context) (repository.TransferRepository, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewTransferRepository(db), nil
}

func (r *LazyTransferRepository) Save(ctx context.Context, record *entity.TransferRecord) error {
	repo, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, record)
}

func (r *LazyTransferRepository) FindByID(ctx context.Context, id string) (*entity.TransferRecord, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (r *LazyTransferRepository) GetRecent(ctx context.Context, limit int) ([]*entity.TransferRecord, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetRecent(ctx, limit)
}

func (r *LazyTransferRepository) DeleteOlderThan(ctx context.Context, cutoffMillis int64) (int64, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return 0, err
	}
	return repo.DeleteOlderThan(ctx, cutoffMillis)
}
