package usecase

import (
	"context"
	"errors"
	"os"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

// FolderError is a failed or dismissed chooser with a directory the
// extension can fall back to.
type FolderError struct {
	Fallback string
	Err      error
}

func (e *FolderError) Error() string { return e.Err.Error() }

func (e *FolderError) Unwrap() error { return e.Err }

// ChooseFolderUseCase asks the user for a download directory.
type ChooseFolderUseCase struct {
	chooser port.FolderChooser
	home    func() (string, error)
}

// NewChooseFolderUseCase creates a new ChooseFolderUseCase.
func NewChooseFolderUseCase(chooser port.FolderChooser) *ChooseFolderUseCase {
	return &ChooseFolderUseCase{chooser: chooser, home: os.UserHomeDir}
}

// Execute opens the chooser at defaultDir. Every failure is a *FolderError;
// a dismissed dialog wraps port.ErrNoSelection.
func (u *ChooseFolderUseCase) Execute(ctx context.Context, defaultDir string) (string, error) {
	log := logging.FromContext(ctx)

	path, err := u.chooser.Choose(ctx, defaultDir)
	if err == nil && path == "" {
		err = port.ErrNoSelection
	}
	if err == nil {
		log.Debug().Str("backend", u.chooser.Name()).Str("path", path).Msg("folder chosen")
		return path, nil
	}

	if !errors.Is(err, port.ErrNoSelection) {
		log.Warn().Err(err).Str("backend", u.chooser.Name()).Msg("folder chooser failed")
	}
	fallback, _ := u.home()
	return "", &FolderError{Fallback: fallback, Err: err}
}
