package cache

// ScopedKeyer prefixes every key from an inner Keyer, so deployments (or
// incompatible versions) sharing one Redis instance never collide.
//
//	keyer := cache.NewScopedKeyer(nil, "labyrinth:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Prefix returns the namespace prepended to keys.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(gridHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
