package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bnema/dtabridge/internal/application/usecase"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
)

// FileHandler handles move, choose_folder and stat_path.
type FileHandler struct {
	move         *usecase.MoveFileUseCase
	chooseFolder *usecase.ChooseFolderUseCase
	statPath     *usecase.StatPathUseCase
}

// HandleMove relocates a finished download.
func (h *FileHandler) HandleMove() nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(ctx context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.MoveRequest](payload)
		if err != nil {
			return nil, err
		}
		path, err := h.move.Execute(ctx, usecase.MoveFileInput{Src: req.Src, Dst: req.Dst})
		if err != nil {
			return nil, err
		}
		return nativemsg.PathResponse{OK: true, Path: path}, nil
	})
}

// HandleChooseFolder shows the directory picker. Failures carry the home
// directory as fallback.
func (h *FileHandler) HandleChooseFolder() nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(ctx context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.ChooseFolderRequest](payload)
		if err != nil {
			return nil, err
		}
		path, err := h.chooseFolder.Execute(ctx, req.Default)
		if err != nil {
			var fe *usecase.FolderError
			if errors.As(err, &fe) {
				return nil, &nativemsg.ResponseError{Code: fe.Error(), Fallback: fe.Fallback, Err: err}
			}
			return nil, err
		}
		return nativemsg.PathResponse{OK: true, Path: path}, nil
	})
}

// HandleStatPath checks a candidate download directory.
func (h *FileHandler) HandleStatPath() nativemsg.MessageHandler {
	return nativemsg.MessageHandlerFunc(func(ctx context.Context, payload json.RawMessage) (any, error) {
		req, err := nativemsg.DecodeRequest[nativemsg.StatPathRequest](payload)
		if err != nil {
			return nil, err
		}

		input := usecase.StatPathInput{Path: req.Path, AutoCreate: req.AutoCreate}
		if req.RequiredBytes > 0 {
			required := int64(req.RequiredBytes)
			input.RequiredBytes = &required
		}

		out, err := h.statPath.Execute(ctx, input)
		if err != nil {
			var se *usecase.StatPathError
			if errors.As(err, &se) {
				return nil, &nativemsg.ResponseError{Code: se.Code, Msg: se.Msg, FreeBytes: se.FreeBytes, Err: err}
			}
			return nil, err
		}
		return nativemsg.PathResponse{OK: true, Path: out.Path, Created: out.Created}, nil
	})
}

// RegisterFileHandlers registers the file handlers whose use cases are set.
func RegisterFileHandlers(router *nativemsg.MessageRouter, cfg Config) error {
	h := &FileHandler{
		move:         cfg.MoveUC,
		chooseFolder: cfg.ChooseFolderUC,
		statPath:     cfg.StatPathUC,
	}

	if cfg.MoveUC != nil {
		if err := router.RegisterHandler(nativemsg.TypeMove, h.HandleMove()); err != nil {
			return err
		}
	}
	if cfg.ChooseFolderUC != nil {
		if err := router.RegisterHandler(nativemsg.TypeChooseFolder, h.HandleChooseFolder()); err != nil {
			return err
		}
	}
	if cfg.StatPathUC != nil {
		if err := router.RegisterHandler(nativemsg.TypeStatPath, h.HandleStatPath()); err != nil {
			return err
		}
	}
	return nil
}
