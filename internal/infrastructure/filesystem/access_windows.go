//go:build windows

package filesystem

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// canWrite approximates access(2): Windows ACLs are only known by trying.
func canWrite(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return info.Mode().Perm()&0o200 != 0
	}
	return New().ProbeWritable(context.Background(), path) == nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
