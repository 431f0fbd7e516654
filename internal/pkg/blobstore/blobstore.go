package blobstore

import (
	"context"
	"errors"
)

// ErrBlobExists is returned by Put when the key is already taken and the
// caller did not ask for an upsert.
var ErrBlobExists = errors.New("blob already exists")

// PutOptions controls how a blob is written.
type PutOptions struct {
	// CacheControl is the cache policy recorded alongside the blob,
	// e.g. "3600" for one hour.
	CacheControl string
	// Upsert overwrites an existing blob under the same key.
	Upsert bool
}

// Store defines the content store interface for generated credential images.
type Store interface {
	// Put writes data under key.
	Put(ctx context.Context, key string, data []byte, opts PutOptions) error

	// PublicURL returns the publicly reachable URL for a stored key. It does
	// not check existence; a URL for a never-stored key simply won't resolve.
	PublicURL(key string) string
}
