package port

import "context"

// FileSystem provides file system operations for the application layer.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	IsDirectory(ctx context.Context, path string) (bool, error)
	MkdirAll(ctx context.Context, path string) error
	// Move renames src to dst, copying across devices when rename cannot.
	Move(ctx context.Context, src, dst string) error
	// FreeBytes reports the space available to unprivileged users on path's filesystem.
	FreeBytes(ctx context.Context, path string) (uint64, error)
	// ProbeWritable creates and removes a scratch file inside dir.
	ProbeWritable(ctx context.Context, dir string) error
	// CanWrite checks write permission on path without modifying it.
	CanWrite(ctx context.Context, path string) bool
}
