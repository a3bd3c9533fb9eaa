package nativemsg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler() MessageHandler {
	return MessageHandlerFunc(func(_ context.Context, payload json.RawMessage) (any, error) {
		req, err := DecodeRequest[ControlRequest](payload)
		if err != nil {
			return nil, err
		}
		return IDResponse{OK: true, ID: req.ID}, nil
	})
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestMessageRouter_RegisterHandlerValidation(t *testing.T) {
	r := NewMessageRouter(context.Background(), nil)
	assert.Error(t, r.RegisterHandler("", echoHandler()))
	assert.Error(t, r.RegisterHandler("x", nil))
	assert.NoError(t, r.RegisterHandler("x", echoHandler()))
	assert.Equal(t, []string{"x"}, r.Types())
}

func TestMessageRouter_Dispatch(t *testing.T) {
	r := NewMessageRouter(context.Background(), nil)
	require.NoError(t, r.RegisterHandler(TypeDownloadPause, echoHandler()))
	require.NoError(t, r.RegisterHandler("boom", MessageHandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		panic("kaboom")
	})))
	require.NoError(t, r.RegisterHandler("fail", MessageHandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		return nil, &ResponseError{Code: "no_selection", Fallback: "/home/u"}
	})))

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "routed", payload: `{"type":"download_pause","id":"t1"}`, want: `{"ok":true,"id":"t1"}`},
		{name: "unknown tag", payload: `{"type":"frobnicate"}`, want: `{"ok":false,"error":"unknown type"}`},
		{name: "missing tag", payload: `{"id":"x"}`, want: `{"ok":false,"error":"unknown type"}`},
		{name: "non-object", payload: `[1,2]`, want: `{"ok":false,"error":"unknown type"}`},
		{name: "panic recovered", payload: `{"type":"boom"}`, want: `{"ok":false,"error":"internal error"}`},
		{name: "response error fields", payload: `{"type":"fail"}`, want: `{"ok":false,"error":"no_selection","fallback":"/home/u"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := r.Dispatch(context.Background(), json.RawMessage(tt.payload))
			assert.JSONEq(t, tt.want, marshal(t, resp))
		})
	}
}

func TestMessageRouter_DispatchDecodeError(t *testing.T) {
	r := NewMessageRouter(context.Background(), nil)
	require.NoError(t, r.RegisterHandler(TypeDownloadPause, echoHandler()))

	resp := r.Dispatch(context.Background(), json.RawMessage(`{"type":"download_pause","id":42}`))
	er, ok := resp.(ErrorResponse)
	require.True(t, ok)
	assert.False(t, er.OK)
	assert.Contains(t, er.Error, "invalid request")
}

func readReplies(t *testing.T, raw []byte) []string {
	t.Helper()
	ch := NewChannel(bytes.NewReader(raw), io.Discard, 0)
	var out []string
	for {
		msg, err := ch.ReadMessage()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, string(msg))
	}
}

func TestMessageRouter_ServeAnswersInOrderUntilEOF(t *testing.T) {
	in := bytes.NewBuffer(nil)
	in.Write(frame(`{"type":"download_pause","id":"a"}`))
	in.Write(frame(`{"type":"nope"}`))
	in.Write(frame(`{"type":"download_pause","id":"b"}`))

	var out bytes.Buffer
	r := NewMessageRouter(context.Background(), NewChannel(in, &out, 0))
	require.NoError(t, r.RegisterHandler(TypeDownloadPause, echoHandler()))

	require.NoError(t, r.Serve(context.Background()))

	replies := readReplies(t, out.Bytes())
	require.Len(t, replies, 3)
	assert.JSONEq(t, `{"ok":true,"id":"a"}`, replies[0])
	assert.JSONEq(t, `{"ok":false,"error":"unknown type"}`, replies[1])
	assert.JSONEq(t, `{"ok":true,"id":"b"}`, replies[2])
}

func TestMessageRouter_ServeWritesReplyBeforeFollowUp(t *testing.T) {
	in := bytes.NewBuffer(frame(`{"type":"download_start","url":"https://e/f"}`))
	var out bytes.Buffer
	ch := NewChannel(in, &out, 0)
	r := NewMessageRouter(context.Background(), ch)

	begun := 0
	require.NoError(t, r.RegisterHandler(TypeDownloadStart, MessageHandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		return NewStartedResponse("x", func() {
			begun++
			assert.NoError(t, ch.WriteMessage(map[string]any{"type": "progress", "id": "x", "downloaded": 1}))
		}), nil
	})))

	require.NoError(t, r.Serve(context.Background()))

	assert.Equal(t, 1, begun)
	replies := readReplies(t, out.Bytes())
	require.Len(t, replies, 2)
	assert.JSONEq(t, `{"ok":true,"id":"x"}`, replies[0])
	assert.JSONEq(t, `{"type":"progress","id":"x","downloaded":1}`, replies[1])
}

func TestMessageRouter_ServeProtocolErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{name: "truncated", input: []byte{0x10, 0x00, 0x00, 0x00, '{'}, want: ErrTruncatedFrame},
		{name: "malformed", input: frame(`not json`), want: ErrMalformedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMessageRouter(context.Background(), NewChannel(bytes.NewReader(tt.input), io.Discard, 0))
			assert.ErrorIs(t, r.Serve(context.Background()), tt.want)
		})
	}
}

func TestMessageRouter_ServeStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewMessageRouter(context.Background(), NewChannel(pr, io.Discard, 0))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
