package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. A shared
// Redis deployment can give each workspace its own cache namespace this way.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CircuitKey generates a prefixed key for circuit generation caching.
func (k *ScopedKeyer) CircuitKey(model, prompt string) string {
	return k.prefix + k.inner.CircuitKey(model, prompt)
}

// CodeKey generates a prefixed key for firmware generation caching.
func (k *ScopedKeyer) CodeKey(model, circuitHash string) string {
	return k.prefix + k.inner.CodeKey(model, circuitHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(circuitHash, opts)
}
