package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPClient is the subset of http.Client the fetcher needs, abstracted for
// testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads documents over HTTP with a size cap and an optional
// persistent cache.
type Fetcher struct {
	client    HTTPClient
	userAgent string
	maxSize   int64
	cache     *DiskCache
}

// NewFetcher creates a Fetcher from the given configuration. If config.CacheDir
// is set, downloaded documents are cached there for config.CacheTTL.
func NewFetcher(config Config) (*Fetcher, error) {
	fetcher := &Fetcher{
		client:    &http.Client{Timeout: config.Timeout},
		userAgent: config.UserAgent,
		maxSize:   config.MaxSize,
	}
	if fetcher.userAgent == "" {
		fetcher.userAgent = DefaultUserAgent
	}
	if fetcher.maxSize <= 0 {
		fetcher.maxSize = DefaultMaxSize
	}

	if config.CacheDir != "" {
		cache, err := NewDiskCache(config.CacheDir, config.CacheTTL)
		if err != nil {
			return nil, err
		}
		fetcher.cache = cache
	}

	return fetcher, nil
}

// SetHTTPClient replaces the underlying HTTP client. Intended for tests.
func (f *Fetcher) SetHTTPClient(client HTTPClient) {
	f.client = client
}

// IsURL reports whether the conversion input names a remote document.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Fetch downloads the document at the given URL and returns its raw bytes.
// Cached documents are served without a network call.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if data, found := f.cache.Get(url); found {
			return data, nil
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	request.Header.Set("User-Agent", f.userAgent)

	response, err := f.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, response.Status)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("document at %s exceeds size limit of %d bytes", url, f.maxSize)
	}

	if f.cache != nil {
		// Cache failures are not fetch failures.
		_ = f.cache.Set(url, data)
	}

	return data, nil
}
