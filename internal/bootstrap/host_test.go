package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/infrastructure/config"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Journal.Enabled = false
	cfg.Downloads.TempDir = t.TempDir()
	cfg.Downloads.PollIntervalMs = 5
	return cfg
}

func noChooser(string) (string, error) {
	return "", errors.New("not found")
}

func frames(t *testing.T, messages ...string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ch := nativemsg.NewChannel(nil, &buf, 0)
	for _, m := range messages {
		require.NoError(t, ch.WriteFrame([]byte(m)))
	}
	return &buf
}

func readAll(t *testing.T, r io.Reader) []string {
	t.Helper()
	ch := nativemsg.NewChannel(r, nil, 0)
	var out []string
	for {
		payload, err := ch.ReadFrame()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, string(payload))
	}
}

func TestRunHost_AnswersUntilStdinCloses(t *testing.T) {
	in := frames(t,
		`{"type":"nope"}`,
		`{"type":"stat_path"}`,
		`{"type":"download_pause","id":"missing"}`,
		`{"type":"download","url":"http://example.invalid"}`,
	)
	var out bytes.Buffer

	err := RunHost(context.Background(), HostInput{
		Config:   testConfig(t),
		Stdin:    in,
		Stdout:   &out,
		GOOS:     "linux",
		LookPath: noChooser,
	})
	require.NoError(t, err)

	replies := readAll(t, &out)
	require.Len(t, replies, 4)
	assert.JSONEq(t, `{"ok":false,"error":"unknown type"}`, replies[0])
	assert.JSONEq(t, `{"ok":false,"error":"no_path"}`, replies[1])
	assert.JSONEq(t, `{"ok":false,"error":"unknown id"}`, replies[2])
	assert.JSONEq(t, `{"ok":false,"error":"use interactive download via connectNative"}`, replies[3])
}

func TestRunHost_TruncatedFrameIsFatal(t *testing.T) {
	in := bytes.NewReader([]byte{10, 0, 0, 0, '{'})
	var out bytes.Buffer

	err := RunHost(context.Background(), HostInput{
		Config:   testConfig(t),
		Stdin:    in,
		Stdout:   &out,
		LookPath: noChooser,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, nativemsg.ErrTruncatedFrame)
	assert.Zero(t, out.Len())
}

func TestRunHost_StopsOnContextCancel(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	t.Cleanup(func() { _ = stdinW.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunHost(ctx, HostInput{
			Config:   testConfig(t),
			Stdin:    stdinR,
			Stdout:   io.Discard,
			LookPath: noChooser,
		})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("host did not stop")
	}
}

func TestRunHost_DownloadRoundTrip(t *testing.T) {
	content := bytes.Repeat([]byte("dtabridge"), 3000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "clip.bin", time.Time{}, bytes.NewReader(content))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Journal.Enabled = true
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")
	dest := filepath.Join(t.TempDir(), "clip.bin")

	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- RunHost(context.Background(), HostInput{
			Config:   cfg,
			Stdin:    stdinR,
			Stdout:   stdoutW,
			LookPath: noChooser,
		})
		_ = stdoutW.Close()
	}()

	send := nativemsg.NewChannel(nil, stdinW, 0)
	recv := nativemsg.NewChannel(stdoutR, nil, 0)

	start, err := json.Marshal(map[string]any{"type": "download_start", "url": srv.URL, "path": dest})
	require.NoError(t, err)
	require.NoError(t, send.WriteFrame(start))

	var id string
	var sawAck bool
	for {
		payload, err := recv.ReadFrame()
		require.NoError(t, err)

		var msg struct {
			OK   *bool  `json:"ok"`
			Type string `json:"type"`
			ID   string `json:"id"`
			Size int64  `json:"size"`
			Path string `json:"path"`
		}
		require.NoError(t, json.Unmarshal(payload, &msg))
		if msg.OK != nil {
			require.True(t, *msg.OK, string(payload))
			sawAck = true
			if id == "" {
				id = msg.ID
			}
			assert.Equal(t, id, msg.ID)
			continue
		}
		if id == "" {
			id = msg.ID
		}
		assert.Equal(t, id, msg.ID)
		require.NotEqual(t, "error", msg.Type, string(payload))
		if msg.Type == "done" {
			assert.Equal(t, int64(len(content)), msg.Size)
			assert.Equal(t, dest, msg.Path)
			break
		}
	}
	if !sawAck {
		// The ack may trail the terminal event; it is the next frame.
		payload, err := recv.ReadFrame()
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true,"id":"`+id+`"}`, string(payload))
	}

	require.NoError(t, stdinW.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("host did not stop after stdin closed")
	}

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.FileExists(t, cfg.Journal.Path)
}

func TestTransferOptions(t *testing.T) {
	cfg := config.DefaultConfig().Downloads
	cfg.TempDir = "/tmp/x"
	cfg.MaxBytesPerSecond = 1024
	cfg.MaxConcurrent = 3

	opts := TransferOptions(cfg)
	assert.Equal(t, 8192, opts.ChunkSize)
	assert.Equal(t, 100*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 30*time.Second, opts.ReadTimeout)
	assert.Equal(t, "/tmp/x", opts.TempDir)
	assert.Equal(t, "dtabridge/1.0", opts.UserAgent)
	assert.Equal(t, 1024, opts.BytesPerSecond)
	assert.Equal(t, 3, opts.MaxConcurrent)
}
