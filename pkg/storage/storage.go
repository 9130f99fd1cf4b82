package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Storage reads source files from a backend.
type Storage interface {
	// Open returns a reader for the file at path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) bool
}

// S3Scheme is the URI scheme routed to S3Storage.
const S3Scheme = "s3://"

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 uri", ErrInvalidURI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURI, uri)
	}
	return bucket, key, nil
}

// Resolve picks a backend for uri and returns it together with the path to
// pass to Open. s3://bucket/key goes to S3 using cfg for region and
// credentials (cfg.Bucket is taken from the uri); anything else is a local
// file whose directory becomes the storage root.
func Resolve(ctx context.Context, uri string, cfg S3Config, opts ...S3Option) (Storage, string, error) {
	if uri == "" {
		return nil, "", fmt.Errorf("%w: empty", ErrInvalidURI)
	}

	if strings.HasPrefix(uri, S3Scheme) {
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, "", err
		}
		cfg.Bucket = bucket
		s, err := NewS3Storage(ctx, cfg, opts...)
		if err != nil {
			return nil, "", err
		}
		return s, key, nil
	}

	s, err := NewLocalStorage(filepath.Dir(uri))
	if err != nil {
		return nil, "", err
	}
	return s, filepath.Base(uri), nil
}
