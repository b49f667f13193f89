package storage

import (
	"context"
	"fmt"

	"github.com/bilemo/api/config"
)

// New builds the named disk from configuration.
func New(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "local":
		return NewLocalDisk(config.StorageLocalRoot(), config.StorageURL()), nil
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}

// Default builds the disk named by STORAGE_DISK.
func Default(ctx context.Context) (Disk, error) {
	return New(ctx, config.StorageDefault())
}
