package nativemsg

import (
	"errors"

	"github.com/bnema/dtabridge/internal/application/port"
)

// Error strings the extension matches on.
const (
	ErrCodeUnknownType = "unknown type"
	ErrCodeUnknownID   = "unknown id"
	ErrCodeInternal    = "internal error"
)

// ErrorResponse is the failure shape of every reply.
type ErrorResponse struct {
	OK        bool    `json:"ok"`
	Error     string  `json:"error"`
	Fallback  string  `json:"fallback,omitempty"`
	FreeBytes *uint64 `json:"free_bytes,omitempty"`
	Msg       string  `json:"msg,omitempty"`
}

// ResponseError lets a handler fail with extra fields next to the error code.
type ResponseError struct {
	Code      string
	Fallback  string
	FreeBytes *uint64
	Msg       string
	Err       error
}

func (e *ResponseError) Error() string {
	return e.Code
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// NewErrorResponse converts a handler error into its wire form.
func NewErrorResponse(err error) ErrorResponse {
	var re *ResponseError
	if errors.As(err, &re) {
		return ErrorResponse{
			Error:     re.Code,
			Fallback:  re.Fallback,
			FreeBytes: re.FreeBytes,
			Msg:       re.Msg,
		}
	}
	return ErrorResponse{Error: err.Error()}
}

// IDResponse acknowledges a transfer command.
type IDResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`

	afterWrite func()
}

// NewStartedResponse acknowledges download_start. begin runs once the reply
// frame is written, so the extension learns the id before the first event.
func NewStartedResponse(id string, begin func()) IDResponse {
	return IDResponse{OK: true, ID: id, afterWrite: begin}
}

// AfterWrite implements AfterWriter.
func (r IDResponse) AfterWrite() {
	if r.afterWrite != nil {
		r.afterWrite()
	}
}

// AfterWriter is implemented by replies that must act once they are on the wire.
type AfterWriter interface {
	AfterWrite()
}

// PathResponse is returned by move, choose_folder and stat_path.
type PathResponse struct {
	OK      bool   `json:"ok"`
	Path    string `json:"path"`
	Created bool   `json:"created,omitempty"`
}

// PrerollResponse carries the probed response metadata.
type PrerollResponse struct {
	OK       bool        `json:"ok"`
	Headers  [][2]string `json:"headers"`
	FinalURL string      `json:"finalUrl"`
	Status   int         `json:"status"`
}

type progressEvent struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Downloaded int64  `json:"downloaded"`
	Total      *int64 `json:"total"`
	Path       string `json:"path"`
}

type pausedEvent struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Downloaded int64  `json:"downloaded"`
}

type cancelledEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type doneEvent struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	FinalURL string `json:"finalUrl"`
	Status   int    `json:"status"`
}

type errorEvent struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Error string `json:"error"`
}

// EventPayload maps a transfer event to the message pushed to the extension.
func EventPayload(ev port.DownloadEvent) any {
	name := ev.Type.String()
	switch ev.Type {
	case port.DownloadEventProgress:
		return progressEvent{Type: name, ID: ev.ID, Downloaded: ev.Downloaded, Total: ev.Total, Path: ev.Path}
	case port.DownloadEventPaused:
		return pausedEvent{Type: name, ID: ev.ID, Downloaded: ev.Downloaded}
	case port.DownloadEventCancelled:
		return cancelledEvent{Type: name, ID: ev.ID}
	case port.DownloadEventDone:
		return doneEvent{Type: name, ID: ev.ID, Path: ev.Path, Size: ev.Downloaded, FinalURL: ev.FinalURL, Status: ev.Status}
	default:
		msg := "unknown error"
		if ev.Error != nil {
			msg = ev.Error.Error()
		}
		return errorEvent{Type: port.DownloadEventFailed.String(), ID: ev.ID, Error: msg}
	}
}
