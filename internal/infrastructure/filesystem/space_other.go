//go:build !linux && !windows && !darwin && !freebsd && !dragonfly

package filesystem

import "errors"

func freeBytes(string) (uint64, error) {
	return 0, errors.New("free space query not supported on this platform")
}
