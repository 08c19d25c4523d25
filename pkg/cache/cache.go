// Package cache provides caching for expensive pipeline stages: AI
// responses, generated firmware, and rendered artifacts.
//
// Two implementations are provided:
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//
// Plus a NullCache for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Generation results are kept for a day
// since model output drifts; rendered artifacts are pure functions of the
// circuit and keep longer.
const (
	TTLGeneration = 24 * time.Hour
	TTLArtifact   = 7 * 24 * time.Hour
)

// Cache is the interface for caching expensive results.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns the data, whether it was found, and any error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache with the given TTL.
	// A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the different pipeline stages. Keys are
// deterministic: the same inputs always produce the same key.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// CircuitKey generates a key for AI circuit generation results.
	CircuitKey(model, prompt string) string

	// CodeKey generates a key for AI firmware generation results.
	CodeKey(model, circuitHash string) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string // "svg", "png", "dot"
	ShowStates bool   // pin-state decoration after simulation
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// Format: http:<namespace>:<key>
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CircuitKey generates a key for circuit generation caching.
func (k *DefaultKeyer) CircuitKey(model, prompt string) string {
	return hashKey("circuit", model, prompt)
}

// CodeKey generates a key for firmware generation caching.
func (k *DefaultKeyer) CodeKey(model, circuitHash string) string {
	return hashKey("code", model, circuitHash)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", circuitHash, opts.Format, opts.ShowStates)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
