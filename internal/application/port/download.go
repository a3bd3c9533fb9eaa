package port

import "context"

// DownloadEventType represents the type of download event.
type DownloadEventType int

const (
	// DownloadEventProgress follows every chunk written to the destination.
	DownloadEventProgress DownloadEventType = iota
	// DownloadEventPaused is emitted once when the loop observes the pause flag.
	DownloadEventPaused
	// DownloadEventCancelled is terminal.
	DownloadEventCancelled
	// DownloadEventDone is terminal: the body was fully written.
	DownloadEventDone
	// DownloadEventFailed is terminal: a network, HTTP or file fault.
	DownloadEventFailed
)

func (t DownloadEventType) String() string {
	switch t {
	case DownloadEventProgress:
		return "progress"
	case DownloadEventPaused:
		return "paused"
	case DownloadEventCancelled:
		return "cancelled"
	case DownloadEventDone:
		return "done"
	case DownloadEventFailed:
		return "error"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the transfer emits nothing after this event.
func (t DownloadEventType) IsTerminal() bool {
	return t == DownloadEventCancelled || t == DownloadEventDone || t == DownloadEventFailed
}

// DownloadEvent contains information about a download event.
// Only the fields relevant to Type are meaningful.
type DownloadEvent struct {
	Type       DownloadEventType
	ID         string
	Downloaded int64
	Total      *int64
	Path       string
	FinalURL   string
	Status     int
	Error      error // Set when Type is DownloadEventFailed
}

// DownloadEventHandler receives download event notifications.
// It is called from the transfer goroutine, one event at a time per transfer.
type DownloadEventHandler interface {
	OnDownloadEvent(ctx context.Context, event DownloadEvent)
}

// DownloadEventHandlerFunc adapts a function to DownloadEventHandler.
type DownloadEventHandlerFunc func(ctx context.Context, event DownloadEvent)

func (f DownloadEventHandlerFunc) OnDownloadEvent(ctx context.Context, event DownloadEvent) {
	f(ctx, event)
}
