package crunchbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Crunchbase v4 API root.
	DefaultBaseURL = "https://api.crunchbase.com/api/v4"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderUserKey carries the API key.
	HeaderUserKey = "X-cb-user-key"

	maxBodySize = 5 << 20
)

// fieldIDs are the organization fields requested from the API.
var fieldIDs = []string{
	"identifier",
	"short_description",
	"location_identifiers",
	"website_url",
	"company_type",
	"funding_total",
	"num_acquisitions",
	"num_employees_enum",
	"stock_exchange_symbol",
	"stock_symbol",
	"linkedin",
	"twitter",
	"categories",
}

// Verify interface compliance.
var _ driven.CrunchbaseSource = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithRateLimiter overrides the request throttle.
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = limiter
	}
}

// Client collects organization metadata.
type Client struct {
	http        *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *RateLimiter
}

// NewClient creates a client authenticated with apiKey.
// It returns [domain.ErrSourceUnavailable] when the key is empty.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("crunchbase: no api key configured: %w", domain.ErrSourceUnavailable)
	}

	c := &Client{
		http:        &http.Client{Timeout: DefaultTimeout},
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		rateLimiter: NewRateLimiter(rate.Limit(float64(RequestsPerMinute)/60), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Organization collects the metadata of the organization at orgURL.
func (c *Client) Organization(ctx context.Context, orgURL string) (*domain.CrunchbaseData, error) {
	permalink, err := ParseOrgURL(orgURL)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var payload entityResponse
	if err := c.get(ctx, permalink, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(time.Now().UTC()), nil
}

func (c *Client) get(ctx context.Context, permalink string, out any) error {
	query := url.Values{}
	query.Set("field_ids", strings.Join(fieldIDs, ","))
	query.Set("card_ids", "raised_funding_rounds")
	endpoint := fmt.Sprintf("%s/entities/organizations/%s?%s",
		c.baseURL, url.PathEscape(permalink), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(HeaderUserKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get organization %s: %w", permalink, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxBodySize {
		return fmt.Errorf("%w: organization %s exceeds %d bytes", ErrResponseTooLarge, permalink, maxBodySize)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.rateLimiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			Permalink:  permalink,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding organization %s: %w", permalink, err)
	}
	return nil
}

// ParseOrgURL extracts the organization permalink of a Crunchbase URL.
func ParseOrgURL(orgURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(orgURL))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidOrgURL, orgURL)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "crunchbase.com" {
		return "", fmt.Errorf("%w: %s", ErrInvalidOrgURL, orgURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "organization" || parts[1] == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidOrgURL, orgURL)
	}
	return parts[1], nil
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// errorMessage extracts the message of an API error body. Crunchbase
// returns a list of {code, message} objects.
func errorMessage(body []byte) string {
	var errs []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errs); err == nil && len(errs) > 0 {
		return errs[0].Message
	}
	return ""
}
