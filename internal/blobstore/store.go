// Package blobstore abstracts the remote object store behind a small
// upload/download surface so handlers and tests do not depend on the Azure SDK.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound means the object does not exist in the remote store.
var ErrNotFound = errors.New("blob not found")

// Store is an opaque key-value object store.
type Store interface {
	// Upload writes data under path with the declared content type,
	// overwriting any existing object.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// Download returns the object's bytes and declared content type, or
	// ErrNotFound. An empty content type means the store recorded none.
	Download(ctx context.Context, path string) ([]byte, string, error)
}
