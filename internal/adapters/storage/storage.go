package storage

import (
	"context"
	"fmt"
	"time"
)

// Object categories; blob paths are "{category}/{id}"
const (
	CategoryProducts  = "products"
	CategoryResidents = "residents"
)

// SignedURLTTL is how long issued read links stay valid
const SignedURLTTL = 15 * time.Minute

// ObjectStore is the blob store contract. Implementations hold a single
// process-wide client initialized at startup.
type ObjectStore interface {
	// Upload writes an object and returns a signed read URL for it
	Upload(ctx context.Context, data []byte, contentType, path string) (string, error)
	// Delete removes an object
	Delete(ctx context.Context, path string) error
	// SignedURL issues a time-limited read link for an existing object
	SignedURL(ctx context.Context, path string) (string, error)
}

// ObjectPath builds the canonical blob path for an entity
func ObjectPath(category, id string) string {
	return fmt.Sprintf("%s/%s", category, id)
}
