package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/okian/squadform/internal/domain/narrative"
	"github.com/okian/squadform/pkg/logger"
	"github.com/okian/squadform/pkg/metrics"
)

// Default client configuration constants.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	defaultTimeout         = 15 * time.Second
	defaultRatePerMinute   = 30
	defaultBreakerFailures = 3
	defaultBreakerCooldown = 30 * time.Second
	maxErrorBody           = 512
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Client calls the generateContent endpoint. Each Generate is one attempt,
// gated by a rate limiter and a circuit breaker.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration

	ratePerMinute   int
	breakerFailures uint32
	breakerCooldown time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     logger.Logger
}

// New creates a client for apiKey. An empty key yields a generator that
// always returns ErrDisabled.
func New(apiKey string, opts ...Option) narrative.Generator {
	if strings.TrimSpace(apiKey) == "" {
		return Disabled{}
	}
	return NewClient(apiKey, opts...)
}

// NewClient creates a client with configuration options.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:          apiKey,
		baseURL:         DefaultBaseURL,
		model:           DefaultModel,
		timeout:         defaultTimeout,
		ratePerMinute:   defaultRatePerMinute,
		breakerFailures: defaultBreakerFailures,
		breakerCooldown: defaultBreakerCooldown,
		httpClient:      &http.Client{},
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.ratePerMinute)), c.ratePerMinute)
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "narrative",
		MaxRequests: 1,
		Timeout:     c.breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.breakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations say nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(int(to))
			c.logger.Warn(context.Background(), "narrative circuit breaker state changed",
				logger.String("circuit", name),
				logger.String("from_state", from.String()),
				logger.String("to_state", to.String()))
		},
	})
	return c
}

// State reports the breaker state.
func (c *Client) State() gobreaker.State { return c.breaker.State() }

// Generate renders the prompt for req and returns the model's text.
func (c *Client) Generate(ctx context.Context, req narrative.Request) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrRateLimited
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.call(ctx, narrative.Prompt(req))
	})
	metrics.RecordNarrativeLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return "", err
	}
	text, _ := out.(string)
	return text, nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.baseURL, "/"), url.PathEscape(c.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn(ctx, "narrative upstream returned non-OK status",
			logger.String("request_id", requestID),
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(snippet)))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	var b strings.Builder
	for _, cand := range decoded.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	c.logger.Debug(ctx, "narrative generated",
		logger.String("request_id", requestID),
		logger.Int("chars", len(text)))
	return text, nil
}

// Disabled is the generator used when no API key is configured.
type Disabled struct{}

// Generate always fails with ErrDisabled.
func (Disabled) Generate(context.Context, narrative.Request) (string, error) {
	return "", ErrDisabled
}
