// Package llm implements the narrative generator against a Gemini-style
// generateContent REST endpoint.
package llm

import (
	"net/http"
	"time"

	"github.com/okian/squadform/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the API root, e.g. https://generativelanguage.googleapis.com/v1beta.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithModel sets the model name used in the request path.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds a single upstream call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRatePerMinute caps outgoing requests. Excess calls fail fast.
func WithRatePerMinute(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.ratePerMinute = n
		}
	}
}

// WithBreakerFailures sets how many consecutive failures open the breaker.
func WithBreakerFailures(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.breakerFailures = uint32(n)
		}
	}
}

// WithBreakerCooldown sets how long the breaker stays open.
func WithBreakerCooldown(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.breakerCooldown = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
