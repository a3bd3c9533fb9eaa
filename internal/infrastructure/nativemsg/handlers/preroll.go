package handlers

import (
	"context"
	"encoding/json"

	"github.com/bnema/dtabridge/internal/application/usecase"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
)

// NewPrerollHandler answers preroll with the probed response headers.
func NewPrerollHandler(uc *usecase.PrerollUseCase) nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(ctx context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.PrerollRequest](payload)
		if err != nil {
			return nil, err
		}

		out, err := uc.Execute(ctx, usecase.PrerollInput{
			URL:      req.URL,
			Referrer: req.Referrer,
			Range:    req.Range,
			Headers:  portHeaders(req.Headers),
		})
		if err != nil {
			return nil, err
		}
		return nativemsg.PrerollResponse{
			OK:       true,
			Headers:  out.Headers,
			FinalURL: out.FinalURL,
			Status:   out.Status,
		}, nil
	})
}
