// Package cache provides artifact caching for rendered charts.
//
// Rendering a chart from a large dataset is cheap compared to loading and
// parsing it, but batch runs (the render command, watch mode) repeat the same
// work for every output format and every resize. The pipeline keys rendered
// artifacts by dataset content and render options, so unchanged inputs skip
// straight to the sink output.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for hosts running several renderers
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes its inputs so key
// length is bounded regardless of selection size; [ScopedKeyer] adds a
// namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached items.
const (
	// TTLDataset is how long a parsed dataset stays cached.
	TTLDataset = 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte payloads by key.
//
// Get reports a miss with (nil, false, nil); an error means the backend itself
// failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
