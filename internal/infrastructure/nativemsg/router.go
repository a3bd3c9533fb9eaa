package nativemsg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/dtabridge/internal/logging"
	"github.com/bnema/dtabridge/internal/metrics"
)

// MessageHandler handles one decoded inbound message. The returned value is
// written back as the reply; an error becomes {ok:false,error:...}.
type MessageHandler interface {
	Handle(ctx context.Context, payload json.RawMessage) (any, error)
}

// MessageHandlerFunc adapts a function to the MessageHandler interface.
type MessageHandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Handle calls f(ctx, payload).
func (f MessageHandlerFunc) Handle(ctx context.Context, payload json.RawMessage) (any, error) {
	return f(ctx, payload)
}

// MessageRouter reads requests from a Channel and answers each one.
type MessageRouter struct {
	channel  *Channel
	handlers map[string]MessageHandler
	baseCtx  context.Context

	mu sync.RWMutex
}

// NewMessageRouter creates a new message router.
func NewMessageRouter(ctx context.Context, ch *Channel) *MessageRouter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &MessageRouter{
		channel:  ch,
		handlers: make(map[string]MessageHandler),
		baseCtx:  ctx,
	}
}

// RegisterHandler registers a handler for a message type.
func (r *MessageRouter) RegisterHandler(msgType string, handler MessageHandler) error {
	if msgType == "" {
		return errors.New("message type cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[msgType] = handler
	return nil
}

// Types lists the registered message types.
func (r *MessageRouter) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	return types
}

func (r *MessageRouter) getHandler(msgType string) (MessageHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[msgType]
	return h, ok
}

type inbound struct {
	payload json.RawMessage
	err     error
}

// Serve answers messages until the stream ends (nil), a protocol error
// occurs (returned), or ctx is cancelled (nil). Messages are handled one at
// a time in arrival order.
func (r *MessageRouter) Serve(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "message-router").Logger()

	frames := make(chan inbound)
	go r.readLoop(ctx, frames)

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("serve stopped by context")
			return nil
		case in := <-frames:
			if in.err != nil {
				if errors.Is(in.err, io.EOF) {
					log.Debug().Msg("input closed")
					return nil
				}
				return in.err
			}
			resp := r.Dispatch(ctx, in.payload)
			err := r.channel.WriteMessage(resp)
			if aw, ok := resp.(AfterWriter); ok {
				aw.AfterWrite()
			}
			if err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

// readLoop runs in its own goroutine so Serve can stop on ctx while a read blocks.
func (r *MessageRouter) readLoop(ctx context.Context, out chan<- inbound) {
	for {
		payload, err := r.channel.ReadMessage()
		select {
		case out <- inbound{payload: payload, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// Dispatch routes one message and returns the reply. It never fails: unknown
// types, handler errors and handler panics all become error replies.
func (r *MessageRouter) Dispatch(ctx context.Context, payload json.RawMessage) (resp any) {
	if ctx == nil {
		ctx = r.baseCtx
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		env.Type = ""
	}

	ctx = logging.WithMessageType(ctx, env.Type)
	log := logging.FromContext(ctx)

	handler, ok := r.getHandler(env.Type)
	if !ok {
		log.Warn().Str("type", env.Type).Msg("no handler registered for message type")
		metrics.MessagesTotal.WithLabelValues("unknown", "error").Inc()
		return ErrorResponse{Error: ErrCodeUnknownType}
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("message handler panicked")
			metrics.MessagesTotal.WithLabelValues(env.Type, "panic").Inc()
			resp = ErrorResponse{Error: ErrCodeInternal}
		}
	}()

	result, err := handler.Handle(ctx, payload)
	metrics.MessageDuration.WithLabelValues(env.Type).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Debug().Err(err).Msg("message handler returned error")
		metrics.MessagesTotal.WithLabelValues(env.Type, "error").Inc()
		return NewErrorResponse(err)
	}

	metrics.MessagesTotal.WithLabelValues(env.Type, "ok").Inc()
	return result
}
