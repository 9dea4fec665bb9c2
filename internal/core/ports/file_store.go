package ports

import (
	"context"
	"io"
	"time"
)

// StoredFile describes an object the FileStore accepted.
type StoredFile struct {
	// Key is the storage key the object lives under.
	Key string

	// URL is the stable (non-expiring) object location recorded on the order.
	URL string
}

// FileStore is the contract to blob storage for demos, final deliveries, and
// reference tracks.
type FileStore interface {
	// Store uploads an object under the given key with the given content type
	// and returns its stored location.
	Store(ctx context.Context, key, contentType string, body io.Reader) (StoredFile, error)

	// PresignDownload returns a time-limited download URL for a stored object.
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)

	// URLFor returns the stable object URL a key will be stored under. The
	// result is valid before the object is uploaded, so callers can record
	// the location inside the same transaction that triggers the upload.
	URLFor(key string) string

	// KeyFromURL recovers the storage key from a stored object URL.
	KeyFromURL(url string) (string, error)
}
