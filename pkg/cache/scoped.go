package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each deployment its own
// namespace in a shared cache.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "fretboard:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// Prefix returns the prefix prepended to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(optionsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(optionsHash, opts)
}
