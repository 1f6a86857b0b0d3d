// Package httpfetch retrieves raw bytes over plain HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// MaxBodySize caps the size of a response body.
	MaxBodySize = 10 << 20

	userAgent = "landscape2"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d fetching %s", e.StatusCode, e.URL)
}

// Fetcher performs GET requests.
type Fetcher struct {
	client *http.Client
}

// New creates a fetcher. A nil client selects one with DefaultTimeout.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch returns the body of a 2xx response to a GET request on url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("response body from %s exceeds %d bytes", url, MaxBodySize)
	}
	return body, nil
}
