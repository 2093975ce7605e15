package storage

import (
	"context"
	"io"
)

// Object is a stored object opened for reading.
type Object struct {
	Body        io.ReadCloser
	ContentType string
}

// ObjectStore is the object-storage capability: put/get/delete by key plus
// time-limited signed URL issuance. Implemented by MinioStore in production
// and by an in-memory fake in tests.
type ObjectStore interface {
	// PresignPut returns a short-lived signed URL for uploading one object.
	PresignPut(ctx context.Context, key string) (string, error)
	// PresignGet returns a short-lived signed URL for reading one object.
	PresignGet(ctx context.Context, key string) (string, error)
	// Get opens the object for streaming.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete removes one object.
	Delete(ctx context.Context, key string) error
	// DeleteAll removes a batch of objects, returning the first error after
	// attempting every key.
	DeleteAll(ctx context.Context, keys []string) error
}
