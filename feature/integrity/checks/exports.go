package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mccraft/core/storage"
	"mccraft/feature/importer/export"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ExportsReport describes the export files found under a bucket prefix.
type ExportsReport struct {
	Bucket      string   `json:"bucket"`
	Prefix      string   `json:"prefix"`
	RecipeFiles int      `json:"recipe_files"`
	TooltipMap  bool     `json:"tooltip_map"`
	LookupMap   bool     `json:"lookup_map"`
	Missing     []string `json:"missing"`
	Status      string   `json:"status"` // "ok", "error"
}

// CheckExports verifies that the bucket holds a jeiexporter export under prefix.
func CheckExports(ctx context.Context, client storage.Client, bucket, prefix string) (*ExportsReport, error) {
	prefix = folder(prefix)

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &ExportsReport{
		Bucket:  bucket,
		Prefix:  prefix,
		Missing: []string{},
		Status:  "ok",
	}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		switch {
		case name == "" || strings.HasSuffix(name, "/"):
		case name == export.TooltipMapFile:
			report.TooltipMap = true
		case name == export.LookupMapFile:
			report.LookupMap = true
		case strings.HasSuffix(name, ".json"):
			report.RecipeFiles++
		}
	}

	if report.RecipeFiles == 0 {
		report.Missing = append(report.Missing, "recipe exports")
	}
	if !report.TooltipMap {
		report.Missing = append(report.Missing, export.TooltipMapFile)
	}
	if len(report.Missing) > 0 {
		report.Status = "error"
	}

	return report, nil
}

// FixExportsFolder creates the folder marker for prefix so exports can be pushed to it.
func FixExportsFolder(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger) error {
	folderPath := folder(prefix)
	_, err := client.PutObject(ctx, bucket, folderPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
	if err != nil {
		logger.Error("Failed to create folder", zap.String("folder", folderPath), zap.Error(err))
		return err
	}
	logger.Info("Created exports folder", zap.String("folder", folderPath))
	return nil
}

func folder(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		return prefix + "/"
	}
	return prefix
}
