// Package fetch retrieves remote Other Support documents over HTTP so they
// can be converted without a local copy, with optional persistent caching of
// the downloaded bytes.
package fetch

import "time"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxSize caps how many bytes a fetched document may contain. Other
// Support documents are small; anything larger is almost certainly not one.
const DefaultMaxSize = 32 << 20

// DefaultCacheTTL is the default time-to-live for cached documents.
const DefaultCacheTTL = 24 * time.Hour

// DefaultUserAgent is the User-Agent header sent with requests.
const DefaultUserAgent = "other-support-xml-gen/1.0"

// Config holds configuration for a Fetcher.
type Config struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxSize is the maximum document size in bytes.
	MaxSize int64

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// CacheDir is the directory for persistent document caching.
	// If empty, caching is disabled.
	CacheDir string

	// CacheTTL is the time-to-live for cached documents.
	CacheTTL time.Duration
}

// DefaultConfig returns a Config with sensible defaults and caching disabled.
func DefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeout,
		MaxSize:   DefaultMaxSize,
		UserAgent: DefaultUserAgent,
		CacheTTL:  DefaultCacheTTL,
	}
}
