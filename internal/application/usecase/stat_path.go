package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

// Result codes of a failed stat_path check.
const (
	StatNoPath            = "no_path"
	StatNotDirectory      = "not_directory"
	StatNotWritable       = "not_writable"
	StatInsufficientSpace = "insufficient_space"
	StatStatfsFailed      = "statvfs_failed"
	StatParentNotWritable = "parent_not_writable"
	StatCreateFailed      = "create_failed"
)

// StatPathError carries a result code and the detail that goes with it.
type StatPathError struct {
	Code      string
	Msg       string
	FreeBytes *uint64
}

func (e *StatPathError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return e.Code
}

// StatPathInput is a candidate download directory.
type StatPathInput struct {
	Path          string
	RequiredBytes *int64
	AutoCreate    bool
}

// StatPathOutput is a usable directory.
type StatPathOutput struct {
	Path    string
	Created bool
}

// StatPathUseCase checks that a directory can receive a download.
type StatPathUseCase struct {
	fs port.FileSystem
}

// NewStatPathUseCase creates a new StatPathUseCase.
func NewStatPathUseCase(fs port.FileSystem) *StatPathUseCase {
	return &StatPathUseCase{fs: fs}
}

// Execute runs the checks. Failures are *StatPathError except for
// unexpected filesystem faults.
func (u *StatPathUseCase) Execute(ctx context.Context, input StatPathInput) (*StatPathOutput, error) {
	if input.Path == "" {
		return nil, &StatPathError{Code: StatNoPath}
	}
	absPath, err := filepath.Abs(input.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", input.Path, err)
	}

	exists, err := u.fs.Exists(ctx, absPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return u.checkMissing(ctx, absPath, input.AutoCreate)
	}

	isDir, err := u.fs.IsDirectory(ctx, absPath)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, &StatPathError{Code: StatNotDirectory}
	}

	if err := u.fs.ProbeWritable(ctx, absPath); err != nil {
		return nil, &StatPathError{Code: StatNotWritable, Msg: err.Error()}
	}

	if input.RequiredBytes != nil {
		free, err := u.fs.FreeBytes(ctx, absPath)
		if err != nil {
			return nil, &StatPathError{Code: StatStatfsFailed, Msg: err.Error()}
		}
		if required := *input.RequiredBytes; required > 0 && free < uint64(required) {
			return nil, &StatPathError{Code: StatInsufficientSpace, FreeBytes: &free}
		}
	}

	return &StatPathOutput{Path: absPath}, nil
}

func (u *StatPathUseCase) checkMissing(ctx context.Context, absPath string, autoCreate bool) (*StatPathOutput, error) {
	parent := filepath.Dir(absPath)
	parentExists, err := u.fs.Exists(ctx, parent)
	if err != nil {
		return nil, err
	}
	if !parentExists || !u.fs.CanWrite(ctx, parent) {
		return nil, &StatPathError{Code: StatParentNotWritable}
	}

	if !autoCreate {
		return &StatPathOutput{Path: absPath}, nil
	}
	if err := u.fs.MkdirAll(ctx, absPath); err != nil {
		return nil, &StatPathError{Code: StatCreateFailed, Msg: err.Error()}
	}

	logging.FromContext(ctx).Info().Str("path", absPath).Msg("created download directory")
	return &StatPathOutput{Path: absPath, Created: true}, nil
}
