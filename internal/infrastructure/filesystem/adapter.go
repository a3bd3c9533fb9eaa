package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/logging"
)

const (
	dirPerm         = 0o755
	probeFilePrefix = ".dta_write_test_"
)

// Adapter implements port.FileSystem using the OS filesystem.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (a *Adapter) IsDirectory(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (a *Adapter) MkdirAll(_ context.Context, path string) error {
	return os.MkdirAll(path, dirPerm)
}

// Move renames src to dst. When the two live on different filesystems the
// file is copied and the source removed afterwards.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !isCrossDevice(err) {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("src", src).
		Str("dst", dst).
		Msg("rename crossed devices, copying")

	info, statErr := os.Stat(src)
	if statErr != nil {
		return statErr
	}
	if info.IsDir() {
		return fmt.Errorf("move %s: cross-device directory moves are not supported", src)
	}
	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

// ProbeWritable proves dir accepts new files by creating and removing one.
func (a *Adapter) ProbeWritable(_ context.Context, dir string) error {
	probe := filepath.Join(dir, probeFilePrefix+uuid.NewString())
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	_, werr := f.Write([]byte("x"))
	cerr := f.Close()
	rerr := os.Remove(probe)
	return errors.Join(werr, cerr, rerr)
}

func (a *Adapter) CanWrite(_ context.Context, path string) bool {
	return canWrite(path)
}

func (a *Adapter) FreeBytes(_ context.Context, path string) (uint64, error) {
	return freeBytes(path)
}

var _ port.FileSystem = (*Adapter)(nil)
