package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/application/transfer"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
	"github.com/bnema/dtabridge/internal/logging"
)

// ErrLegacyDownload answers the one-shot download message, which the host
// no longer serves.
var ErrLegacyDownload = errors.New("use interactive download via connectNative")

// DownloadHandler handles the download_* family of messages.
type DownloadHandler struct {
	transfers TransferController
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(transfers TransferController) *DownloadHandler {
	return &DownloadHandler{transfers: transfers}
}

// HandleStart registers a transfer and answers with its id. Fetching is held
// until the router has written that answer.
func (h *DownloadHandler) HandleStart() nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(ctx context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.DownloadStartRequest](payload)
		if err != nil {
			return nil, err
		}

		id, begin, err := h.transfers.StartHeld(ctx, transfer.Params{
			URL:      req.URL,
			Method:   req.Method,
			Body:     req.Body,
			Referrer: req.Referrer,
			Headers:  portHeaders(req.Headers),
			Filename: req.Filename,
			Path:     req.Path,
			Offset:   int64(req.Offset),
		})
		if err != nil {
			return nil, err
		}

		logging.FromContext(ctx).Info().
			Str("transfer_id", id).
			Str("url", req.URL).
			Msg("transfer registered")
		return nativemsg.NewStartedResponse(id, begin), nil
	})
}

// HandleControl applies pause, resume or cancel to the addressed transfer.
func (h *DownloadHandler) HandleControl(apply func(id string) error) nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(_ context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.ControlRequest](payload)
		if err != nil {
			return nil, err
		}
		if err := apply(req.ID); err != nil {
			if errors.Is(err, transfer.ErrUnknownID) {
				return nil, &nativemsg.ResponseError{Code: nativemsg.ErrCodeUnknownID, Err: err}
			}
			return nil, err
		}
		return nativemsg.IDResponse{OK: true, ID: req.ID}, nil
	})
}

// HandleLegacy answers the one-shot download message.
func (*DownloadHandler) HandleLegacy() nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		return nil, ErrLegacyDownload
	})
}

// RegisterDownloadHandlers registers download_start, the control messages
// and the legacy download tag.
func RegisterDownloadHandlers(router *nativemsg.MessageRouter, transfers TransferController) error {
	h := NewDownloadHandler(transfers)

	handlers := map[string]nativemsg.MessageHandler{
		nativemsg.TypeDownloadStart:  h.HandleStart(),
		nativemsg.TypeDownloadPause:  h.HandleControl(transfers.Pause),
		nativemsg.TypeDownloadResume: h.HandleControl(transfers.Resume),
		nativemsg.TypeDownloadCancel: h.HandleControl(transfers.Cancel),
		nativemsg.TypeDownload:       h.HandleLegacy(),
	}
	for msgType, handler := range handlers {
		if err := router.RegisterHandler(msgType, handler); err != nil {
			return err
		}
	}
	return nil
}

func portHeaders(list nativemsg.HeaderList) []port.Header {
	if len(list) == 0 {
		return nil
	}
	out := make([]port.Header, len(list))
	for i, h := range list {
		out[i] = port.Header{Name: h.Name, Value: h.Value}
	}
	return out
}
