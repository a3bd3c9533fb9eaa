// Package nativemsg implements the browser native messaging transport:
// 4-byte little-endian length-prefixed JSON frames over a byte stream.
package nativemsg

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
)

const lengthPrefixSize = 4

// DefaultMaxFrameBytes caps inbound frames when no limit is configured.
const DefaultMaxFrameBytes = 64 << 20

var (
	// ErrTruncatedFrame means the stream ended inside a length prefix or payload.
	ErrTruncatedFrame = errors.New("truncated frame")
	// ErrMalformedFrame means a complete payload was not valid JSON.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrFrameTooLarge means the length prefix exceeds the configured maximum.
	ErrFrameTooLarge = errors.New("frame too large")
)

type flusher interface {
	Flush() error
}

// Channel reads and writes frames. Reads must come from a single goroutine;
// writes may come from any goroutine and never interleave.
type Channel struct {
	r        io.Reader
	w        io.Writer
	wmu      sync.Mutex
	maxFrame uint32
}

// NewChannel wraps r and w. maxFrameBytes <= 0 selects DefaultMaxFrameBytes.
func NewChannel(r io.Reader, w io.Writer, maxFrameBytes int) *Channel {
	limit := uint64(DefaultMaxFrameBytes)
	if maxFrameBytes > 0 {
		limit = uint64(maxFrameBytes)
	}
	if limit > math.MaxUint32 {
		limit = math.MaxUint32
	}
	return &Channel{r: r, w: w, maxFrame: uint32(limit)}
}

// ReadFrame returns the next payload. It returns io.EOF when the stream ends
// cleanly between frames.
func (c *Channel) ReadFrame() ([]byte, error) {
	var prefix [lengthPrefixSize]byte
	if _, err := io.ReadFull(c.r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: length prefix: %w", ErrTruncatedFrame, err)
		}
		return nil, fmt.Errorf("read length prefix: %w", err)
	}

	n := binary.LittleEndian.Uint32(prefix[:])
	if n > c.maxFrame {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFrameTooLarge, n, c.maxFrame)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(c.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: payload of %d bytes: %w", ErrTruncatedFrame, n, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}

// ReadMessage reads one frame and checks that it holds JSON.
func (c *Channel) ReadMessage() (json.RawMessage, error) {
	payload, err := c.ReadFrame()
	if err != nil {
		return nil, err
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrMalformedFrame)
	}
	return payload, nil
}

// WriteFrame writes prefix and payload as one unit.
func (c *Channel) WriteFrame(payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: outbound payload of %d bytes", ErrFrameTooLarge, len(payload))
	}
	buf := make([]byte, lengthPrefixSize+len(payload))
	binary.LittleEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[lengthPrefixSize:], payload)

	c.wmu.Lock()
	defer c.wmu.Unlock()

	if _, err := c.w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if f, ok := c.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	return nil
}

// WriteMessage JSON-encodes v and writes it as one frame.
func (c *Channel) WriteMessage(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return c.WriteFrame(data)
}
