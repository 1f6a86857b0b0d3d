package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Option customises a Client.
type Option func(*options)

type options struct {
	rate    rate.Limit
	baseURL string
}

// WithRequestRate overrides the per-token request rate.
func WithRequestRate(limit rate.Limit) Option {
	return func(o *options) {
		o.rate = limit
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// session pairs a go-github client with the limiter of its token.
type session struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// Client collects repository metadata, spreading requests over a pool of
// token sessions.
type Client struct {
	sessions []*session
	next     atomic.Uint64
}

// NewClient creates a client with one session per non-empty token.
// It returns [domain.ErrSourceUnavailable] when no token is provided.
func NewClient(tokens []string, opts ...Option) (*Client, error) {
	var clients []*http.Client
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(context.Background(), ts)
		tc.Timeout = DefaultTimeout
		clients = append(clients, tc)
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("github: no tokens configured: %w", domain.ErrSourceUnavailable)
	}
	return newClient(clients, opts...)
}

// NewClientWithHTTPClient creates a single-session client on top of an
// already authenticated HTTP client.
func NewClientWithHTTPClient(httpClient *http.Client, opts ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("github: nil http client: %w", domain.ErrInvalidInput)
	}
	return newClient([]*http.Client{httpClient}, opts...)
}

func newClient(httpClients []*http.Client, opts ...Option) (*Client, error) {
	o := options{rate: rate.Limit(ProactiveRate)}
	for _, opt := range opts {
		opt(&o)
	}

	var base *url.URL
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		base = u
	}

	c := &Client{}
	for _, hc := range httpClients {
		client := gh.NewClient(hc)
		if base != nil {
			client.BaseURL = base
		}
		c.sessions = append(c.sessions, &session{
			gh:          client,
			rateLimiter: NewRateLimiter(o.rate),
		})
	}
	return c, nil
}

// Sessions returns the number of token sessions in the pool.
func (c *Client) Sessions() int {
	return len(c.sessions)
}

// session picks the next session round-robin.
func (c *Client) session() *session {
	n := c.next.Add(1) - 1
	return c.sessions[n%uint64(len(c.sessions))]
}

// wait blocks on the session limiter.
func (s *session) wait(ctx context.Context) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// updateRateLimitFromResponse updates the limiter from GitHub response headers.
func (s *session) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	s.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (s *session) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
