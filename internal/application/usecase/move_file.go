package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

var (
	ErrMissingSource      = errors.New("missing src")
	ErrMissingDestination = errors.New("missing dst")
)

// MoveFileInput names the finished file and where it belongs.
type MoveFileInput struct {
	Src string
	Dst string
}

// MoveFileUseCase relocates a finished download.
type MoveFileUseCase struct {
	fs port.FileSystem
}

// NewMoveFileUseCase creates a new MoveFileUseCase.
func NewMoveFileUseCase(fs port.FileSystem) *MoveFileUseCase {
	return &MoveFileUseCase{fs: fs}
}

// Execute moves Src to Dst, creating Dst's directory first. It returns Dst.
func (u *MoveFileUseCase) Execute(ctx context.Context, input MoveFileInput) (string, error) {
	if input.Src == "" {
		return "", ErrMissingSource
	}
	if input.Dst == "" {
		return "", ErrMissingDestination
	}

	if dir := filepath.Dir(input.Dst); dir != "." && dir != "" {
		exists, err := u.fs.Exists(ctx, dir)
		if err != nil {
			return "", err
		}
		if !exists {
			if err := u.fs.MkdirAll(ctx, dir); err != nil {
				return "", fmt.Errorf("create %s: %w", dir, err)
			}
		}
	}

	if err := u.fs.Move(ctx, input.Src, input.Dst); err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info().
		Str("src", input.Src).
		Str("dst", input.Dst).
		Msg("moved download")
	return input.Dst, nil
}
