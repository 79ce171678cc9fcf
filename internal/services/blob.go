package services

import "context"

// BlobStore keeps attachment and avatar files. Put returns the public URL of
// the stored object; Delete takes that same URL.
type BlobStore interface {
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
