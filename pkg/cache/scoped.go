package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing one Redis instance get isolated namespaces.
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PagesKey generates a prefixed key for a pagination result.
func (k *ScopedKeyer) PagesKey(docHash string, opts PagesKeyOpts) string {
	return k.prefix + k.inner.PagesKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered page image.
func (k *ScopedKeyer) ArtifactKey(pagesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pagesHash, opts)
}
