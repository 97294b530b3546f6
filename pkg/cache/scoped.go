package cache

// ScopedKeyer wraps a Keyer with a prefix so different contexts (per-user
// server sessions, test fixtures) get disjoint key spaces on a shared
// backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GenerationKey generates a prefixed key for AI graph-generation caching.
func (k *ScopedKeyer) GenerationKey(model, description string) string {
	return k.prefix + k.inner.GenerationKey(model, description)
}

// ExplanationKey generates a prefixed key for AI explanation caching.
func (k *ScopedKeyer) ExplanationKey(model, graphHash string) string {
	return k.prefix + k.inner.ExplanationKey(model, graphHash)
}

// ScriptKey generates a prefixed key for scaffold script caching.
func (k *ScopedKeyer) ScriptKey(model, graphHash string) string {
	return k.prefix + k.inner.ScriptKey(model, graphHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}
