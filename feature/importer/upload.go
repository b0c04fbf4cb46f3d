package importer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"mccraft/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// UploadDir copies the files of a local export folder into the bucket under prefix.
// It returns the number of uploaded objects.
func UploadDir(ctx context.Context, client storage.Client, bucket, prefix string, src *DirSource, logger *zap.Logger) (int, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return 0, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("bucket %s does not exist", bucket)
	}

	names, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	uploaded := 0
	for _, name := range names {
		if err := uploadFile(ctx, client, bucket, path.Join(prefix, name), src, name); err != nil {
			return uploaded, err
		}
		uploaded++
		logger.Debug("Uploaded export", zap.String("file", name))
	}

	logger.Info("Exports uploaded", zap.String("bucket", bucket), zap.String("prefix", prefix), zap.Int("files", uploaded))
	return uploaded, nil
}

func uploadFile(ctx context.Context, client storage.Client, bucket, objName string, src *DirSource, name string) error {
	f, err := os.Open(filepath.Join(src.Dir, name))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}

	_, err = client.PutObject(ctx, bucket, objName, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}
