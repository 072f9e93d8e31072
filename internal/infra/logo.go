package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// LogoFetcher downloads the company logo printed on invoices. The bytes are
// cached after the first successful fetch; a failing or unconfigured logo host
// degrades to an empty logo, never to a failed invoice.
type LogoFetcher struct {
	url        string
	httpClient *http.Client
	cb         *CircuitBreaker

	mu     sync.Mutex
	cached []byte
}

func NewLogoFetcher(url string) *LogoFetcher {
	return &LogoFetcher{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Fetch returns the logo PNG bytes, or nil when no logo is configured or the
// host is unreachable.
func (f *LogoFetcher) Fetch(ctx context.Context) []byte {
	if f.url == "" {
		return nil
	}

	f.mu.Lock()
	if f.cached != nil {
		defer f.mu.Unlock()
		return f.cached
	}
	f.mu.Unlock()

	var data []byte
	err := f.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return fmt.Errorf("logo: create request: %w", err)
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("logo: host unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("logo: host returned %d", resp.StatusCode)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, 2<<20))
		if err != nil {
			return fmt.Errorf("logo: read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil
	}

	f.mu.Lock()
	f.cached = data
	f.mu.Unlock()
	return data
}
