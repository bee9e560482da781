// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish delivers a finished archive to its destination: a local
// directory or a Cloud Storage bucket.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Sink stores archive bytes under a name and returns where they ended up.
type Sink interface {
	Publish(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes archives into a local directory.
type FileSink struct {
	Dir string
}

// Publish writes data to Dir/name through a temporary file so a partial write
// never replaces an earlier archive.
func (s FileSink) Publish(_ context.Context, name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	dest := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".publish-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing archive: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return dest, nil
}

// GCSSink uploads archives to a Cloud Storage bucket.
type GCSSink struct {
	client     *storage.Client
	bucket     string
	prefix     string
	maxRetries int
	overwrite  bool
	logger     *zap.Logger
}

// GCSOptions configures NewGCSSink.
type GCSOptions struct {
	Bucket     string
	Prefix     string
	MaxRetries int

	// Overwrite allows replacing an existing object of the same name.
	Overwrite bool

	// CredentialsJSON is a service account key. Empty uses application
	// default credentials.
	CredentialsJSON []byte

	Logger *zap.Logger
}

// NewGCSSink creates a storage client for opts.Bucket.
func NewGCSSink(ctx context.Context, opts GCSOptions) (*GCSSink, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("GCS bucket must be set")
	}
	var clientOpts []option.ClientOption
	if len(opts.CredentialsJSON) > 0 {
		clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.CredentialsJSON))
	}
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GCSSink{
		client:     client,
		bucket:     opts.Bucket,
		prefix:     opts.Prefix,
		maxRetries: opts.MaxRetries,
		overwrite:  opts.Overwrite,
		logger:     logger,
	}, nil
}

// Close releases the storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}

// Publish uploads data to gs://bucket/prefix+name, retrying transient
// failures with exponential backoff.
func (s *GCSSink) Publish(ctx context.Context, name string, data []byte) (string, error) {
	object := s.prefix + name
	location := fmt.Sprintf("gs://%s/%s", s.bucket, object)

	err := Retry(ctx, s.maxRetries, func(ctx context.Context) error {
		return s.upload(ctx, object, data)
	}, func(attempt int, backoff time.Duration, err error) {
		s.logger.Warn("upload failed, will retry",
			zap.String("object", location),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", location, err)
	}
	return location, nil
}

func (s *GCSSink) upload(ctx context.Context, object string, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	obj := s.client.Bucket(s.bucket).Object(object)
	if !s.overwrite {
		obj = obj.If(storage.Conditions{DoesNotExist: true})
	}
	w := obj.NewWriter(writeCtx)
	w.ContentType = "application/zip"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return classify(err)
	}
	if err := w.Close(); err != nil {
		return classify(err)
	}
	return nil
}

// classify marks errors that a retry cannot fix.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusPreconditionFailed:
			return Permanent(fmt.Errorf("object already exists: %w", err))
		case http.StatusForbidden, http.StatusNotFound, http.StatusUnauthorized:
			return Permanent(err)
		}
	}
	return err
}
