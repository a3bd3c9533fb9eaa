//go:build !unix && !windows

package filesystem

import "os"

func canWrite(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().Perm()&0o200 != 0
}

func isCrossDevice(error) bool {
	return false
}
