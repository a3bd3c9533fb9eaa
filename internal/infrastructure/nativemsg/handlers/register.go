// Package handlers binds inbound native messages to the application layer.
package handlers

import (
	"context"

	"github.com/bnema/dtabridge/internal/application/transfer"
	"github.com/bnema/dtabridge/internal/application/usecase"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
	"github.com/bnema/dtabridge/internal/logging"
)

// TransferController is the part of transfer.Registry the handlers drive.
type TransferController interface {
	StartHeld(ctx context.Context, params transfer.Params) (id string, release func(), err error)
	Pause(id string) error
	Resume(id string) error
	Cancel(id string) error
}

// Config holds all dependencies for message handlers.
type Config struct {
	Transfers      TransferController
	PrerollUC      *usecase.PrerollUseCase
	MoveUC         *usecase.MoveFileUseCase
	ChooseFolderUC *usecase.ChooseFolderUseCase
	StatPathUC     *usecase.StatPathUseCase
}

// RegisterAll registers every message type with the router. Groups whose
// dependencies are nil are skipped and answer "unknown type".
func RegisterAll(ctx context.Context, router *nativemsg.MessageRouter, cfg Config) error {
	log := logging.FromContext(ctx).With().Str("component", "handlers").Logger()

	if cfg.Transfers != nil {
		if err := RegisterDownloadHandlers(router, cfg.Transfers); err != nil {
			return err
		}
	}

	if cfg.PrerollUC != nil {
		if err := router.RegisterHandler(nativemsg.TypePreroll, NewPrerollHandler(cfg.PrerollUC)); err != nil {
			return err
		}
	}

	if err := RegisterFileHandlers(router, cfg); err != nil {
		return err
	}

	log.Debug().Strs("types", router.Types()).Msg("registered message handlers")
	return nil
}
