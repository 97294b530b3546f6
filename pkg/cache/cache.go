// Package cache provides pluggable byte caching for expensive operations:
// AI generation responses, computed layouts, and scaffold scripts.
//
// Three backends are available:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching entirely
//
// Keys are produced by a [Keyer] so that every component hashes its inputs
// the same way and backends stay interchangeable.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Values are opaque byte slices; callers own serialization.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the operations stackcanvas caches.
type Keyer interface {
	// GenerationKey identifies an AI graph-generation response by model
	// and the full description prompt.
	GenerationKey(model, description string) string

	// ExplanationKey identifies an AI explanation of a specific graph.
	ExplanationKey(model, graphHash string) string

	// ScriptKey identifies a generated scaffold script for a graph.
	ScriptKey(model, graphHash string) string

	// LayoutKey identifies a computed layout by graph content and the
	// dimensions used to place it.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts captures every layout parameter that affects positions.
// Two calls with equal graph hash and equal opts yield identical layouts,
// so they share a cache entry.
type LayoutKeyOpts struct {
	NodeWidth         float64 `json:"node_width"`
	NodeHeight        float64 `json:"node_height"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
}

// DefaultKeyer hashes key components with SHA-256 under a per-operation
// prefix. Prefixes keep the key spaces disjoint across operations.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GenerationKey generates a key for AI graph-generation caching.
func (k *DefaultKeyer) GenerationKey(model, description string) string {
	return hashKey("gen", model, description)
}

// ExplanationKey generates a key for AI explanation caching.
func (k *DefaultKeyer) ExplanationKey(model, graphHash string) string {
	return hashKey("explain", model, graphHash)
}

// ScriptKey generates a key for scaffold script caching.
func (k *DefaultKeyer) ScriptKey(model, graphHash string) string {
	return hashKey("script", model, graphHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
