// Package storage provides blob storage for uploaded photos: an
// S3-compatible backend and a local-directory backend for the local
// variant of the service.
package storage

import "context"

// BlobStore uploads binary content under a caller-chosen key and returns a
// stable, non-expiring public URL for it.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
