// Package scraper implements career-page fetching, posting-ID extraction
// and posting-URL construction.
package scraper

import (
	"context"
	"io"
	"net/http"
	"time"

	"jobmatch/monitor-service/internal/model"
)

// Career pages routinely reject default Go user agents, so the fetcher
// presents a plain browser identity. No retries and no redirect handling
// beyond the transport defaults; pacing comes from rotation and budgets.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher retrieves documents over HTTP with a shared client.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FetchPage returns the response body for url as text. Non-2xx statuses
// and transport failures are reported as *model.FetchError.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &model.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.FetchError{URL: url, Err: err}
	}

	return string(body), nil
}
