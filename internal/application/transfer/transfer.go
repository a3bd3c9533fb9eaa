// Package transfer runs interactive HTTP retrievals that can be paused,
// resumed and cancelled while they stream to disk.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/domain/download"
	"github.com/bnema/dtabridge/internal/domain/entity"
	"github.com/bnema/dtabridge/internal/logging"
	"github.com/bnema/dtabridge/internal/metrics"
)

const (
	defaultChunkSize    = 8192
	defaultPollInterval = 100 * time.Millisecond
	defaultReadTimeout  = 30 * time.Second
	tempPattern         = "dtabridge-*"
	fileMode            = 0o644
)

// Params describes what to fetch and where to put it.
type Params struct {
	URL      string
	Method   string
	Body     *string
	Referrer string
	Headers  []port.Header
	// Filename only contributes the extension of the temp file.
	Filename string
	// Path is the destination. Empty means a temp file created on first write.
	Path string
	// Offset resumes a partial Path. It must match bytes already on disk.
	Offset int64
}

// Options tunes every transfer started by a Registry.
type Options struct {
	ChunkSize      int
	PollInterval   time.Duration
	ReadTimeout    time.Duration
	TempDir        string
	UserAgent      string
	BytesPerSecond int
	MaxConcurrent  int
}

// DefaultOptions returns the values used when config leaves a field unset.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    defaultChunkSize,
		PollInterval: defaultPollInterval,
		ReadTimeout:  defaultReadTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	return o
}

type outcome int

const (
	outcomeDone outcome = iota
	outcomePaused
	outcomeCancelled
)

// Transfer is one retrieval. Only the control flags are written from
// outside its goroutine.
type Transfer struct {
	id      string
	params  Params
	opts    Options
	client  port.HTTPClient
	events  port.DownloadEventHandler
	limiter *rate.Limiter
	abort   context.CancelFunc

	paused    atomic.Bool
	cancelled atomic.Bool
	done      chan struct{}

	mu         sync.RWMutex
	state      entity.TransferState
	downloaded int64
	total      *int64
	path       string
	finalURL   string
	status     int
	err        error
	startedAt  time.Time
	updatedAt  time.Time
}

func newTransfer(id string, params Params, opts Options, client port.HTTPClient, events port.DownloadEventHandler) *Transfer {
	now := time.Now()
	t := &Transfer{
		id:         id,
		params:     params,
		opts:       opts,
		client:     client,
		events:     events,
		done:       make(chan struct{}),
		state:      entity.TransferRunning,
		downloaded: params.Offset,
		path:       params.Path,
		startedAt:  now,
		updatedAt:  now,
	}
	if opts.BytesPerSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(opts.BytesPerSecond), max(opts.BytesPerSecond, opts.ChunkSize))
	}
	return t
}

func (t *Transfer) ID() string { return t.id }

// Done is closed once the loop has emitted its terminal event.
func (t *Transfer) Done() <-chan struct{} { return t.done }

// Pause asks the loop to stop at the next chunk boundary.
func (t *Transfer) Pause() { t.paused.Store(true) }

// Resume clears the pause flag. It is a no-op on a running transfer.
func (t *Transfer) Resume() { t.paused.Store(false) }

// Cancel stops the transfer and aborts any request in flight.
func (t *Transfer) Cancel() {
	t.cancelled.Store(true)
	if t.abort != nil {
		t.abort()
	}
}

// Snapshot returns a copy of the transfer's current state.
func (t *Transfer) Snapshot() entity.TransferRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec := entity.TransferRecord{
		ID:         t.id,
		URL:        t.params.URL,
		FinalURL:   t.finalURL,
		Path:       t.path,
		Downloaded: t.downloaded,
		State:      t.state,
		Status:     t.status,
		StartedAt:  t.startedAt,
		UpdatedAt:  t.updatedAt,
	}
	if t.total != nil {
		total := *t.total
		rec.Total = &total
	}
	if t.err != nil {
		rec.Error = t.err.Error()
	}
	return rec
}

func (t *Transfer) run(ctx context.Context) {
	defer close(t.done)

	log := logging.FromContext(ctx)
	log.Debug().
		Str("url", t.params.URL).
		Int64("offset", t.params.Offset).
		Msg("transfer started")

	for {
		out, err := t.fetch(ctx)
		if err != nil {
			if t.cancelled.Load() || ctx.Err() != nil {
				t.finishCancelled(ctx)
				return
			}
			t.finishFailed(ctx, err)
			return
		}

		switch out {
		case outcomeDone:
			t.finishDone(ctx)
			return
		case outcomeCancelled:
			t.finishCancelled(ctx)
			return
		case outcomePaused:
			if !t.holdPaused(ctx) {
				t.finishCancelled(ctx)
				return
			}
			log.Debug().Int64("offset", t.Downloaded()).Msg("transfer resumed")
		}
	}
}

// fetch issues one request from the current offset and streams the body
// until EOF, a pause, a cancel or a fault.
func (t *Transfer) fetch(ctx context.Context) (outcome, error) {
	if t.cancelled.Load() {
		return outcomeCancelled, nil
	}

	reqCtx, cancelReq := context.WithCancel(ctx)
	defer cancelReq()

	offset := t.Downloaded()
	req, err := t.newRequest(reqCtx, offset)
	if err != nil {
		return 0, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	contentRange := resp.Header.Get("Content-Range")
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable &&
		download.RangeExhausted(offset, contentRange, t.Snapshot().Total) {
		// Paused after the last byte but before EOF was read.
		logging.FromContext(ctx).Debug().Int64("offset", offset).Msg("nothing left to fetch")
		return outcomeDone, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if offset > 0 && resp.StatusCode == http.StatusPartialContent {
		if err := download.CheckResumeStart(offset, contentRange); err != nil {
			return 0, err
		}
	}

	if download.RangeIgnored(offset, resp.StatusCode) {
		logging.FromContext(ctx).Info().
			Int64("offset", offset).
			Msg("server ignored range, restarting from zero")
		offset = 0
	}

	total, hasTotal := download.TotalLength(resp.StatusCode, resp.ContentLength, contentRange, offset)

	file, err := t.openDestination(offset, resp.Header.Get("Content-Type"))
	if err != nil {
		return 0, err
	}
	closed := false
	defer func() {
		if !closed {
			_ = file.Close()
		}
	}()

	finalURL := t.params.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	t.update(func() {
		t.path = file.Name()
		t.finalURL = finalURL
		t.status = resp.StatusCode
		t.downloaded = offset
		t.total = nil
		if hasTotal {
			t.total = &total
		}
	})

	out, err := t.copyBody(ctx, cancelReq, resp.Body, file)
	if err != nil || out != outcomeDone {
		return out, err
	}
	if got := t.Downloaded(); hasTotal && req.Method != http.MethodHead && got != total {
		return 0, fmt.Errorf("body ended at %d of %d bytes", got, total)
	}

	closed = true
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", file.Name(), err)
	}
	return outcomeDone, nil
}

func (t *Transfer) copyBody(ctx context.Context, abortRead context.CancelFunc, body io.Reader, file *os.File) (outcome, error) {
	var stalled atomic.Bool
	watchdog := time.AfterFunc(t.opts.ReadTimeout, func() {
		stalled.Store(true)
		abortRead()
	})
	watchdog.Stop()
	defer watchdog.Stop()

	buf := make([]byte, t.opts.ChunkSize)
	for {
		if t.cancelled.Load() {
			return outcomeCancelled, nil
		}
		if t.paused.Load() {
			return outcomePaused, nil
		}

		watchdog.Reset(t.opts.ReadTimeout)
		n, rerr := readChunk(body, buf)
		watchdog.Stop()

		if n > 0 {
			if err := t.throttle(ctx, n); err != nil {
				return 0, err
			}
			if _, err := file.Write(buf[:n]); err != nil {
				return 0, fmt.Errorf("write %s: %w", file.Name(), err)
			}
			metrics.BytesDownloaded.Add(float64(n))
			t.emitProgress(ctx, t.advance(int64(n)))
		}

		switch {
		case rerr == nil:
		case errors.Is(rerr, io.EOF):
			return outcomeDone, nil
		case stalled.Load():
			return 0, fmt.Errorf("read timed out after %s", t.opts.ReadTimeout)
		default:
			return 0, fmt.Errorf("read body: %w", rerr)
		}
	}
}

// holdPaused emits paused and waits for resume. It returns false when the
// transfer was cancelled while paused.
func (t *Transfer) holdPaused(ctx context.Context) bool {
	t.setState(entity.TransferPaused)
	t.emit(ctx, port.DownloadEvent{Type: port.DownloadEventPaused, Downloaded: t.Downloaded()})

	ticker := time.NewTicker(t.opts.PollInterval)
	defer ticker.Stop()

	for {
		if t.cancelled.Load() {
			return false
		}
		if !t.paused.Load() {
			t.setState(entity.TransferRunning)
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

func (t *Transfer) newRequest(ctx context.Context, offset int64) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(t.params.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if t.params.Body != nil {
		body = strings.NewReader(*t.params.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.params.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	port.ApplyHeaders(req, t.params.Headers, t.params.Referrer, t.opts.UserAgent)
	if offset > 0 {
		req.Header.Set("Range", download.ResumeRange(offset))
	}
	return req, nil
}

// openDestination returns the destination positioned at offset. Bytes past
// offset are dropped so a restart never leaves stale data behind.
func (t *Transfer) openDestination(offset int64, contentType string) (*os.File, error) {
	path := t.Path()
	if path == "" {
		suffix := download.TempSuffix(t.params.Filename, t.params.URL, contentType)
		f, err := os.CreateTemp(t.opts.TempDir, tempPattern+suffix)
		if err != nil {
			return nil, fmt.Errorf("create temp file: %w", err)
		}
		return f, nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if offset == 0 {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if offset > 0 {
		if err := f.Truncate(offset); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("truncate %s: %w", path, err)
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
	}
	return f, nil
}

func (t *Transfer) throttle(ctx context.Context, n int) error {
	if t.limiter == nil {
		return nil
	}
	if err := t.limiter.WaitN(ctx, n); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

// readChunk fills buf unless the body ends first, so chunk boundaries do
// not depend on how the network splits the stream. The reader's own error
// is returned as is: a body cut short by the network reports
// io.ErrUnexpectedEOF, which must not pass for a clean end.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (t *Transfer) Downloaded() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.downloaded
}

func (t *Transfer) Path() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

func (t *Transfer) State() entity.TransferState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *Transfer) advance(n int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.downloaded += n
	t.updatedAt = time.Now()
	return t.downloaded
}

func (t *Transfer) setState(state entity.TransferState) {
	t.update(func() { t.state = state })
}

func (t *Transfer) update(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn()
	t.updatedAt = time.Now()
}
