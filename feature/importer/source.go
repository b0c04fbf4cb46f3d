package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mccraft/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source lists and opens the files of one export folder.
type Source interface {
	// List returns the file names in the folder, sorted.
	List(ctx context.Context) ([]string, error)
	// Open opens a file returned by List.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// String describes the source for logs.
	String() string
}

// DirSource reads exports from a local directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns the exports folder of a jeiexporter output directory.
func NewDirSource(jeiexporterDir string) *DirSource {
	return &DirSource{Dir: filepath.Join(jeiexporterDir, "exports")}
}

func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exports folder: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Dir, name))
}

func (s *DirSource) String() string {
	return s.Dir
}

// BucketSource reads exports stored under a prefix of an object storage bucket.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// NewBucketSource creates a bucket source. The prefix is treated as a folder.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketSource{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *BucketSource) List(ctx context.Context) ([]string, error) {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.Bucket)
	}

	var names []string
	opts := minio.ListObjectsOptions{Prefix: s.Prefix, Recursive: false}
	for obj := range s.Client.ListObjects(ctx, s.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.Prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.Client.GetObject(ctx, s.Bucket, s.Prefix+name, minio.GetObjectOptions{})
}

func (s *BucketSource) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Prefix)
}
