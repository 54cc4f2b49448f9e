package port

import "context"

// ObjectStorage abstracts the object store holding uploaded attachment files.
type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
