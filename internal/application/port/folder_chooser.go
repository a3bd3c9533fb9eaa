package port

import (
	"context"
	"errors"
)

// ErrNoSelection is returned when the user dismissed the dialog.
var ErrNoSelection = errors.New("no_selection")

// FolderChooser shows a native directory picker.
type FolderChooser interface {
	// Name identifies the backend (zenity, kdialog, ...).
	Name() string
	// Choose blocks until the user picks a directory or dismisses the dialog.
	Choose(ctx context.Context, defaultDir string) (string, error)
}
