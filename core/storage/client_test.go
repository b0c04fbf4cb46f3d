package storage_test

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mccraft/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportsBucket = "jei-exports"

type listEntry struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int    `xml:"Size"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}

type listResult struct {
	XMLName        xml.Name       `xml:"ListBucketResult"`
	Name           string         `xml:"Name"`
	Prefix         string         `xml:"Prefix"`
	KeyCount       int            `xml:"KeyCount"`
	MaxKeys        int            `xml:"MaxKeys"`
	IsTruncated    bool           `xml:"IsTruncated"`
	Contents       []listEntry    `xml:"Contents"`
	CommonPrefixes []commonPrefix `xml:"CommonPrefixes"`
}

// exportsServer serves a path-style S3 bucket holding objects.
func exportsServer(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	const modified = "Tue, 02 Jan 2024 03:04:05 GMT"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
		if bucket != exportsBucket {
			w.WriteHeader(http.StatusNotFound)
			if r.Method != http.MethodHead {
				fmt.Fprint(w, `<Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message></Error>`)
			}
			return
		}

		switch {
		case r.Method == http.MethodHead && key == "":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
			prefix := r.URL.Query().Get("prefix")
			delimiter := r.URL.Query().Get("delimiter")
			res := listResult{Name: exportsBucket, Prefix: prefix, MaxKeys: 1000}
			seen := map[string]bool{}
			for k, body := range objects {
				if !strings.HasPrefix(k, prefix) {
					continue
				}
				rest := strings.TrimPrefix(k, prefix)
				if i := strings.Index(rest, delimiter); delimiter != "" && i >= 0 {
					p := prefix + rest[:i+1]
					if !seen[p] {
						seen[p] = true
						res.CommonPrefixes = append(res.CommonPrefixes, commonPrefix{Prefix: p})
					}
					continue
				}
				res.Contents = append(res.Contents, listEntry{Key: k, LastModified: "2024-01-02T03:04:05.000Z", ETag: `"etag"`, Size: len(body)})
			}
			res.KeyCount = len(res.Contents)
			w.Header().Set("Content-Type", "application/xml")
			assert.NoError(t, xml.NewEncoder(w).Encode(res))
		case r.Method == http.MethodGet:
			body, ok := objects[key]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Length", fmt.Sprint(len(body)))
			w.Header().Set("ETag", `"etag"`)
			w.Header().Set("Last-Modified", modified)
			io.WriteString(w, body)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) storage.Client {
	t.Helper()
	client, err := storage.NewClient(storage.Config{
		Endpoint:       srv.URL,
		AccessKey:      "testkey",
		SecretKey:      "testsecret",
		Bucket:         exportsBucket,
		Region:         "us-east-1",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Defaults", storage.Config{Endpoint: "localhost:9000", AccessKey: "minioadmin", SecretKey: "minioadmin", Bucket: exportsBucket}},
		{"HTTP Scheme", storage.Config{Endpoint: "http://localhost:9000"}},
		{"HTTPS Scheme", storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "eu-west-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClient_BucketExists(t *testing.T) {
	client := newTestClient(t, exportsServer(t, nil))

	ok, err := client.BucketExists(context.Background(), exportsBucket)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.BucketExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_ListExports(t *testing.T) {
	client := newTestClient(t, exportsServer(t, map[string]string{
		"exports/Smelting.json":     `{"category":"Smelting"}`,
		"exports/tooltipMap.json":   `{}`,
		"exports/old/Blasting.json": `{}`,
		"README.md":                 "exports live under exports/",
	}))

	var keys, prefixes []string
	for obj := range client.ListObjects(context.Background(), exportsBucket, minio.ListObjectsOptions{Prefix: "exports/"}) {
		require.NoError(t, obj.Err)
		if strings.HasSuffix(obj.Key, "/") {
			prefixes = append(prefixes, obj.Key)
			continue
		}
		keys = append(keys, obj.Key)
	}

	assert.ElementsMatch(t, []string{"exports/Smelting.json", "exports/tooltipMap.json"}, keys)
	assert.Equal(t, []string{"exports/old/"}, prefixes)
}

func TestClient_GetObject(t *testing.T) {
	client := newTestClient(t, exportsServer(t, map[string]string{
		"exports/Smelting.json": `{"category":"Smelting"}`,
	}))

	t.Run("Found", func(t *testing.T) {
		rc, err := client.GetObject(context.Background(), exportsBucket, "exports/Smelting.json", minio.GetObjectOptions{})
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"category":"Smelting"}`, string(body))
	})

	t.Run("Missing", func(t *testing.T) {
		rc, err := client.GetObject(context.Background(), exportsBucket, "exports/Missing.json", minio.GetObjectOptions{})
		// The object is fetched lazily, so a missing key surfaces on the first read.
		require.NoError(t, err)
		defer rc.Close()

		_, err = io.ReadAll(rc)
		require.Error(t, err)
		assert.Equal(t, "NoSuchKey", minio.ToErrorResponse(err).Code)
	})
}
