package transfer

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/application/port"
)

const waitTimeout = 5 * time.Second

// source returns n deterministic bytes.
func source(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i%251) ^ seed
	}
	return b
}

// contentServer serves data with Range support and records every Range header it saw.
type contentServer struct {
	*httptest.Server
	mu     sync.Mutex
	ranges []string
}

func newContentServer(t *testing.T, data []byte) *contentServer {
	t.Helper()
	cs := &contentServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.ranges = append(cs.ranges, r.Header.Get("Range"))
		cs.mu.Unlock()
		http.ServeContent(w, r, "file.bin", time.Time{}, bytes.NewReader(data))
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *contentServer) Ranges() []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]string(nil), cs.ranges...)
}

// stallServer sends headers and head bytes, then blocks until the client
// goes away or the test ends.
func stallServer(t *testing.T, head []byte, contentLength int) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(contentLength))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(head)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

// eventSink records events and lets a test react to them from the transfer goroutine.
type eventSink struct {
	mu       sync.Mutex
	events   []port.DownloadEvent
	hook     func(port.DownloadEvent)
	terminal map[string]chan struct{}
}

func newEventSink() *eventSink {
	return &eventSink{terminal: make(map[string]chan struct{})}
}

func (s *eventSink) OnDownloadEvent(_ context.Context, ev port.DownloadEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	hook := s.hook
	var done chan struct{}
	if ev.Type.IsTerminal() {
		done = s.doneChan(ev.ID)
	}
	s.mu.Unlock()

	if hook != nil {
		hook(ev)
	}
	if done != nil {
		close(done)
	}
}

func (s *eventSink) doneChan(id string) chan struct{} {
	ch, ok := s.terminal[id]
	if !ok {
		ch = make(chan struct{})
		s.terminal[id] = ch
	}
	return ch
}

// wait blocks until id emitted its terminal event and returns its events in order.
func (s *eventSink) wait(t *testing.T, id string) []port.DownloadEvent {
	t.Helper()
	s.mu.Lock()
	ch := s.doneChan(id)
	s.mu.Unlock()

	select {
	case <-ch:
	case <-time.After(waitTimeout):
		t.Fatalf("transfer %s did not finish", id)
	}
	return s.For(id)
}

func (s *eventSink) For(id string) []port.DownloadEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []port.DownloadEvent
	for _, ev := range s.events {
		if ev.ID == id {
			out = append(out, ev)
		}
	}
	return out
}

func types(events []port.DownloadEvent) []port.DownloadEventType {
	out := make([]port.DownloadEventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.ChunkSize = 8192
	opts.PollInterval = 5 * time.Millisecond
	opts.TempDir = t.TempDir()
	opts.UserAgent = "dtabridge-test"
	return opts
}

func newTestRegistry(t *testing.T, client port.HTTPClient, sink *eventSink, opts Options, options ...RegistryOption) *Registry {
	t.Helper()
	reg := NewRegistry(context.Background(), client, sink, opts, options...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
		defer cancel()
		require.NoError(t, reg.Shutdown(ctx))
	})
	return reg
}

// shortBodyServer promises contentLength bytes, sends body, then drops the
// connection.
func shortBodyServer(t *testing.T, body []byte, contentLength int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		conn, rw, err := http.NewResponseController(w).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		defer conn.Close()
		_, _ = fmt.Fprintf(rw, "HTTP/1.1 200 OK\r\nContent-Length: %d\r\nContent-Type: application/octet-stream\r\n\r\n", contentLength)
		_, _ = rw.Write(body)
		_ = rw.Flush()
	}))
	t.Cleanup(srv.Close)
	return srv
}

// shiftedRangeServer answers every resume with a 206 that starts at byte 0.
func shiftedRangeServer(t *testing.T, data []byte) *contentServer {
	t.Helper()
	cs := &contentServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.ranges = append(cs.ranges, r.Header.Get("Range"))
		cs.mu.Unlock()
		if r.Header.Get("Range") == "" {
			http.ServeContent(w, r, "file.bin", time.Time{}, bytes.NewReader(data))
			return
		}
		w.Header().Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", len(data)-1, len(data)))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(data)
	}))
	t.Cleanup(cs.Close)
	return cs
}
