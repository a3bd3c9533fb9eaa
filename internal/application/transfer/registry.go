package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/domain/repository"
	"github.com/bnema/dtabridge/internal/logging"
	"github.com/bnema/dtabridge/internal/metrics"
)

var (
	ErrUnknownID        = errors.New("unknown id")
	ErrMissingURL       = errors.New("missing url")
	ErrTooManyTransfers = errors.New("too many transfers")
	ErrShuttingDown     = errors.New("host shutting down")
	ErrInvalidOffset    = errors.New("invalid offset")
)

// Registry owns every live transfer, keyed by ID.
type Registry struct {
	ctx       context.Context
	cancelAll context.CancelFunc
	client    port.HTTPClient
	events    port.DownloadEventHandler
	journal   repository.TransferRepository
	opts      Options
	newID     func() string

	mu        sync.RWMutex
	transfers map[string]*Transfer
	used      map[string]struct{}
	closed    bool
	wg        sync.WaitGroup
}

// RegistryOption configures optional Registry collaborators.
type RegistryOption func(*Registry)

// WithJournal records every transfer start and terminal state.
func WithJournal(repo repository.TransferRepository) RegistryOption {
	return func(r *Registry) { r.journal = repo }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(fn func() string) RegistryOption {
	return func(r *Registry) { r.newID = fn }
}

// NewRegistry creates a registry whose transfers live until ctx is done or
// Shutdown is called.
func NewRegistry(ctx context.Context, client port.HTTPClient, events port.DownloadEventHandler, opts Options, options ...RegistryOption) *Registry {
	runCtx, cancel := context.WithCancel(logging.WithComponent(ctx, "transfer"))
	r := &Registry{
		ctx:       runCtx,
		cancelAll: cancel,
		client:    client,
		events:    events,
		opts:      opts.withDefaults(),
		newID:     uuid.NewString,
		transfers: make(map[string]*Transfer),
		used:      make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Start registers a transfer and begins fetching at once.
func (r *Registry) Start(ctx context.Context, params Params) (string, error) {
	id, release, err := r.StartHeld(ctx, params)
	if err != nil {
		return "", err
	}
	release()
	return id, nil
}

// StartHeld registers a transfer whose goroutine waits for release before
// fetching, so the caller can deliver the id before any event for it.
// Shutdown before release ends the transfer as cancelled.
func (r *Registry) StartHeld(_ context.Context, params Params) (string, func(), error) {
	if err := r.validate(params); err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return "", nil, ErrShuttingDown
	}
	if r.opts.MaxConcurrent > 0 && len(r.transfers) >= r.opts.MaxConcurrent {
		r.mu.Unlock()
		return "", nil, ErrTooManyTransfers
	}
	id := r.newID()
	if _, dup := r.used[id]; dup {
		r.mu.Unlock()
		return "", nil, fmt.Errorf("duplicate transfer id %s", id)
	}

	ctx, abort := context.WithCancel(logging.WithTransferID(r.ctx, id))
	t := newTransfer(id, params, r.opts, r.client, r.events)
	t.abort = abort
	r.transfers[id] = t
	r.used[id] = struct{}{}
	r.wg.Add(1)
	r.mu.Unlock()

	metrics.TransfersStarted.Inc()
	metrics.ActiveTransfers.Inc()

	gate := make(chan struct{})
	go func() {
		defer r.wg.Done()
		defer abort()
		select {
		case <-gate:
		case <-ctx.Done():
		}
		r.record(t)
		t.run(ctx)
		r.remove(t)
	}()

	return id, sync.OnceFunc(func() { close(gate) }), nil
}

func (r *Registry) validate(params Params) error {
	if params.URL == "" {
		return ErrMissingURL
	}
	if params.Offset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, params.Offset)
	}
	if params.Offset == 0 {
		return nil
	}
	if params.Path == "" {
		return fmt.Errorf("%w: offset requires path", ErrInvalidOffset)
	}
	info, err := os.Stat(params.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOffset, err)
	}
	if info.Size() < params.Offset {
		return fmt.Errorf("%w: %s holds %d bytes, offset is %d", ErrInvalidOffset, params.Path, info.Size(), params.Offset)
	}
	return nil
}

func (r *Registry) Pause(id string) error {
	t, ok := r.Get(id)
	if !ok {
		return ErrUnknownID
	}
	t.Pause()
	return nil
}

func (r *Registry) Resume(id string) error {
	t, ok := r.Get(id)
	if !ok {
		return ErrUnknownID
	}
	t.Resume()
	return nil
}

func (r *Registry) Cancel(id string) error {
	t, ok := r.Get(id)
	if !ok {
		return ErrUnknownID
	}
	t.Cancel()
	return nil
}

func (r *Registry) Get(id string) (*Transfer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transfers[id]
	return t, ok
}

func (r *Registry) Snapshot(id string) (entity.TransferRecord, bool) {
	t, ok := r.Get(id)
	if !ok {
		return entity.TransferRecord{}, false
	}
	return t.Snapshot(), true
}

// List returns snapshots of the live transfers, oldest first.
func (r *Registry) List() []entity.TransferRecord {
	r.mu.RLock()
	out := make([]entity.TransferRecord, 0, len(r.transfers))
	for _, t := range r.transfers {
		out = append(out, t.Snapshot())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// Shutdown cancels every live transfer and waits for their loops to close
// their files, or for ctx to expire.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for _, t := range r.transfers {
		t.cancelled.Store(true)
	}
	r.mu.Unlock()
	r.cancelAll()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Registry) remove(t *Transfer) {
	r.record(t)

	r.mu.Lock()
	delete(r.transfers, t.id)
	r.mu.Unlock()

	metrics.ActiveTransfers.Dec()
}

// record writes the transfer to the journal. Journal failures never stop a transfer.
func (r *Registry) record(t *Transfer) {
	if r.journal == nil {
		return
	}
	ctx := context.WithoutCancel(r.ctx)
	rec := t.Snapshot()
	if err := r.journal.Save(ctx, &rec); err != nil {
		metrics.JournalErrors.Inc()
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("transfer_id", t.id).
			Msg("failed to record transfer")
	}
}
