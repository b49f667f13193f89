// Package storage stores uploaded files on a named disk.
//
// Two drivers are available:
//   - "local" local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.Default()
//	err = disk.Put(ctx, "products/galaxy-s21.png", file)
//	url := disk.URL("products/galaxy-s21.png")
package storage

import (
	"context"
	"io"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
