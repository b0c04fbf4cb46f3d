// Package mocks holds a testify mock of storage.Client and helpers for staging
// a bucket of jeiexporter exports in tests.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client.
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

// ListObjects returns the channel given to Return, or a closed one.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	return Listing()
}

// OnBucket expects a BucketExists check on bucket.
func (m *Client) OnBucket(bucket string, exists bool) *mock.Call {
	return m.On("BucketExists", mock.Anything, bucket).Return(exists, nil)
}

// OnList expects a listing of bucket under prefix and answers with keys.
// An empty prefix matches any listing of the bucket.
func (m *Client) OnList(bucket, prefix string, keys ...string) *mock.Call {
	var opts interface{} = mock.Anything
	if prefix != "" {
		opts = mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == prefix })
	}
	return m.On("ListObjects", mock.Anything, bucket, opts).Return(Listing(keys...))
}

// OnListError expects a listing of bucket that fails with err.
func (m *Client) OnListError(bucket string, err error) *mock.Call {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: err}
	close(ch)
	return m.On("ListObjects", mock.Anything, bucket, mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
}

// OnGet expects a download of key and serves body.
func (m *Client) OnGet(bucket, key, body string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, key, mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil)
}

// Listing returns a closed channel yielding one object per key.
func Listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}
