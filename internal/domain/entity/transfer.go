package entity

import (
	"errors"
	"time"
)

// TransferState is the lifecycle state of one retrieval.
type TransferState string

const (
	TransferRunning   TransferState = "running"
	TransferPaused    TransferState = "paused"
	TransferCancelled TransferState = "cancelled"
	TransferDone      TransferState = "done"
	TransferErrored   TransferState = "errored"
)

// IsTerminal reports whether no further events will follow this state.
func (s TransferState) IsTerminal() bool {
	switch s {
	case TransferCancelled, TransferDone, TransferErrored:
		return true
	default:
		return false
	}
}

// TransferRecord is the persisted view of a transfer, written on start and
// on every state change that matters to a later "what happened" query.
type TransferRecord struct {
	ID         string
	URL        string
	FinalURL   string
	Path       string
	Downloaded int64
	Total      *int64 // nil when the server never announced a length
	State      TransferState
	Status     int // last HTTP status, 0 before the first response
	Error      string
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// Progress returns completion in [0,1], or -1 when the total is unknown.
func (r *TransferRecord) Progress() float64 {
	if r.Total == nil || *r.Total <= 0 {
		return -1
	}
	p := float64(r.Downloaded) / float64(*r.Total)
	if p > 1 {
		return 1
	}
	return p
}

func (r *TransferRecord) Validate() error {
	if r == nil || r.ID == "" || r.URL == "" {
		return ErrInvalidTransfer
	}
	if r.Downloaded < 0 {
		return ErrInvalidTransfer
	}
	switch r.State {
	case TransferRunning, TransferPaused, TransferCancelled, TransferDone, TransferErrored:
	default:
		return ErrInvalidTransfer
	}
	return nil
}

var ErrInvalidTransfer = errors.New("invalid transfer record")
