package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
)

// GCSStorage publishes finished storyboards to a Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// Publish uploads every artifact under <prefix>/<boardID>/.
func (s *GCSStorage) Publish(ctx context.Context, boardID string, artifacts []Artifact) error {
	for _, a := range artifacts {
		object := path.Join(s.prefix, boardID, a.Name)
		if err := s.upload(ctx, object, a); err != nil {
			return fmt.Errorf("failed to upload %s: %w", a.Name, err)
		}
	}
	return nil
}

func (s *GCSStorage) upload(ctx context.Context, object string, a Artifact) error {
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = a.ContentType

	if _, err := io.Copy(w, bytes.NewReader(a.Data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object: %w", err)
	}

	return nil
}
