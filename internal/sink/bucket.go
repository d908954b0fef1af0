package sink

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	client "github.com/hsn0918/buildvu-client"
)

// ErrEmptyURL is returned when no bucket URL is given.
var ErrEmptyURL = errors.New("sink: bucket url is required")

const zipContentType = "application/zip"

// Bucket writes artifacts under an optional key prefix.
type Bucket struct {
	bucket *blob.Bucket
	prefix string
}

// Open opens the bucket at urlstr. Keys written through it start with prefix.
func Open(ctx context.Context, urlstr, prefix string) (*Bucket, error) {
	if urlstr == "" {
		return nil, ErrEmptyURL
	}

	bkt, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("sink: open bucket %s: %w", urlstr, err)
	}

	return New(bkt, prefix), nil
}

// New wraps an already opened bucket. Closing the returned Bucket closes bkt.
func New(bkt *blob.Bucket, prefix string) *Bucket {
	return &Bucket{bucket: bkt, prefix: prefix}
}

// Key returns the object key an artifact is stored under.
func (b *Bucket) Key(result *client.Result, fileName string) string {
	name := filepath.Base(client.ArtifactPath(result.DownloadURL, "", fileName))
	return path.Join(b.prefix, name)
}

// Store streams the artifact of result into the bucket and returns its key.
// A failed transfer leaves no object behind.
func (b *Bucket) Store(ctx context.Context, dl client.Downloader, result *client.Result, fileName string) (string, error) {
	if result == nil {
		return "", client.ErrNilResult
	}
	if result.DownloadURL == "" {
		return "", client.ErrNoDownloadURL
	}

	key := b.Key(result, fileName)

	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := b.bucket.NewWriter(writeCtx, key, &blob.WriterOptions{ContentType: zipContentType})
	if err != nil {
		return "", fmt.Errorf("sink: open writer %s: %w", key, err)
	}

	if err := dl.DownloadResultTo(ctx, result, w); err != nil {
		// Cancelling before Close discards the partial object.
		cancel()
		w.Close()
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("sink: write %s: %w", key, err)
	}

	return key, nil
}

func (b *Bucket) Close() error {
	return b.bucket.Close()
}
