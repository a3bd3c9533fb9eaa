package nativemsg

import (
	"context"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

// EventWriter pushes transfer events to the extension as unsolicited frames.
type EventWriter struct {
	channel *Channel
}

// NewEventWriter creates an EventWriter on ch.
func NewEventWriter(ch *Channel) *EventWriter {
	return &EventWriter{channel: ch}
}

// OnDownloadEvent writes one event frame. A failed write is logged; the
// transfer keeps going so the file still completes if the browser is gone.
func (w *EventWriter) OnDownloadEvent(ctx context.Context, event port.DownloadEvent) {
	if err := w.channel.WriteMessage(EventPayload(event)); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("transfer_id", event.ID).
			Str("event", event.Type.String()).
			Msg("failed to write transfer event")
	}
}

var _ port.DownloadEventHandler = (*EventWriter)(nil)
