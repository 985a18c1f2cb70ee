// Package imagestore adapts an S3-compatible object store to the narrow
// image contract the book lifecycle needs: store a buffer under a folder
// and get a public URL back, or delete by that URL.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the externally reachable base the bucket is served
	// from (CDN or the endpoint itself). No trailing slash.
	PublicBaseURL string
}

type MinIO struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinIO(cfg Config) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.Endpoint
	}

	return &MinIO{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Store uploads data under the given folder and returns the public URL.
// Object keys are extension-less; the Content-Type stored with the
// object is what makes the URL render.
func (s *MinIO) Store(ctx context.Context, data []byte, folder string) (string, error) {
	objectName := folder + "/" + uuid.New().String()
	contentType := http.DetectContentType(data)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}

	return s.baseURL + "/" + s.bucket + "/" + objectName, nil
}

// Delete removes the object a previously returned URL points at.
func (s *MinIO) Delete(ctx context.Context, rawURL string) error {
	objectName, err := s.objectName(rawURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectName, err)
	}
	return nil
}

// objectName derives the folder-scoped object name back out of a public
// URL. It is the single derivation rule Store and Delete agree on: take
// the bucket-relative path and strip any file extension, so
// "https://store/books/abc123.jpg" resolves to "books/abc123".
func (s *MinIO) objectName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}

	p := strings.TrimPrefix(u.Path, "/")
	p = strings.TrimPrefix(p, s.bucket+"/")
	p = strings.TrimSuffix(p, path.Ext(p))
	if p == "" {
		return "", fmt.Errorf("image url %q has no object path", rawURL)
	}
	return p, nil
}
