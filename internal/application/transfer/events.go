package transfer

import (
	"context"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/logging"
	"github.com/bnema/dtabridge/internal/metrics"
)

func (t *Transfer) emit(ctx context.Context, ev port.DownloadEvent) {
	ev.ID = t.id
	if t.events != nil {
		t.events.OnDownloadEvent(ctx, ev)
	}
}

func (t *Transfer) emitProgress(ctx context.Context, downloaded int64) {
	t.mu.RLock()
	ev := port.DownloadEvent{
		Type:       port.DownloadEventProgress,
		Downloaded: downloaded,
		Total:      t.total,
		Path:       t.path,
	}
	t.mu.RUnlock()
	t.emit(ctx, ev)
}

func (t *Transfer) finishDone(ctx context.Context) {
	t.setState(entity.TransferDone)
	snap := t.Snapshot()

	logging.FromContext(ctx).Info().
		Str("path", snap.Path).
		Int64("size", snap.Downloaded).
		Int("status", snap.Status).
		Msg("transfer done")

	metrics.TransfersFinished.WithLabelValues(string(entity.TransferDone)).Inc()
	t.emit(ctx, port.DownloadEvent{
		Type:       port.DownloadEventDone,
		Downloaded: snap.Downloaded,
		Path:       snap.Path,
		FinalURL:   snap.FinalURL,
		Status:     snap.Status,
	})
}

func (t *Transfer) finishCancelled(ctx context.Context) {
	t.setState(entity.TransferCancelled)

	logging.FromContext(ctx).Info().
		Int64("downloaded", t.Downloaded()).
		Msg("transfer cancelled")

	metrics.TransfersFinished.WithLabelValues(string(entity.TransferCancelled)).Inc()
	t.emit(ctx, port.DownloadEvent{Type: port.DownloadEventCancelled})
}

func (t *Transfer) finishFailed(ctx context.Context, err error) {
	t.update(func() {
		t.state = entity.TransferErrored
		t.err = err
	})

	logging.FromContext(ctx).Warn().
		Err(err).
		Int64("downloaded", t.Downloaded()).
		Msg("transfer failed")

	metrics.TransfersFinished.WithLabelValues(string(entity.TransferErrored)).Inc()
	t.emit(ctx, port.DownloadEvent{Type: port.DownloadEventFailed, Error: err})
}
