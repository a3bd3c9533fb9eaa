//go:build unix

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

func canWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
