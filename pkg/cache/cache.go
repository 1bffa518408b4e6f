// Package cache provides caching for pagination results and rendered
// page artifacts.
//
// The preview service recomputes nothing that has not changed: a
// document's normalized element stream hashes to a stable key, so
// repeated layout requests for the same content hit the cache, and
// rendered page images are keyed by the pagination result they were
// drawn from. The CLI uses the file backend, the preview service can
// use Redis, and NullCache disables caching entirely.
package cache

import (
	"context"
	"time"
)

// TTL values for the different cache kinds.
const (
	// TTLPages is how long pagination results are kept. Pagination is
	// cheap to recompute, so entries do not need to live long.
	TTLPages = 24 * time.Hour

	// TTLArtifact is how long rendered page images are kept. Artifacts
	// are deterministic in their key, so they can live longer.
	TTLArtifact = 72 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss. Errors are reserved for backend failures, not misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys for the two cached stages.
type Keyer interface {
	// PagesKey identifies a pagination result by the hash of the
	// normalized document content plus the settings that shaped it.
	PagesKey(docHash string, opts PagesKeyOpts) string

	// ArtifactKey identifies a rendered page image by the hash of the
	// pagination result plus the render settings.
	ArtifactKey(pagesHash string, opts ArtifactKeyOpts) string
}

// PagesKeyOpts are the settings that affect pagination output.
type PagesKeyOpts struct {
	Estimator  string  `json:"estimator"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
	Margin     float64 `json:"margin"`
}

// ArtifactKeyOpts are the settings that affect a rendered page.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Page   int     `json:"page"`
	Scale  float64 `json:"scale"`
	Guides bool    `json:"guides"`
}

// DefaultKeyer builds keys by hashing the option structs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PagesKey generates a key for a pagination result.
func (k *DefaultKeyer) PagesKey(docHash string, opts PagesKeyOpts) string {
	return hashKey("pages", docHash, opts)
}

// ArtifactKey generates a key for a rendered page image.
func (k *DefaultKeyer) ArtifactKey(pagesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pagesHash, opts)
}
