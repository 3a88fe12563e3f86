// Package cache stores build artifacts between pipeline runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory, for the CLI
//   - [RedisCache]: shared cache for several builders, via go-redis
//   - [NullCache]: never stores anything, for tests and --no-cache
//
// # Keys
//
// A [Keyer] derives keys from the hash of the input document and the options
// that influence an artifact. [ScopedKeyer] prefixes keys so several projects
// can share one backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "campus-a:")
//	key := keyer.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{Format: "obj", View: "L2"})
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLDocument = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey identifies a normalized diagram document.
	DocumentKey(docHash string) string

	// ArtifactKey identifies one exported artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the export options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format          string `json:"format"`
	View            string `json:"view"`
	ShowDeviceNames bool   `json:"show_device_names"`
	Settings        string `json:"settings,omitempty"` // hash of the effective settings
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
