package cache

// ScopedKeyer wraps a Keyer with a prefix, so tenants sharing one backend
// never read each other's entries. The server scopes keys by the engine
// configuration in use.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "fonts:cm:")
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

// BoxKey generates a prefixed box key.
func (k *ScopedKeyer) BoxKey(source string, opts BoxKeyOpts) string {
	return k.prefix + k.inner.BoxKey(source, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(boxHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(boxHash, opts)
}
