package llm

import "errors"

// Sentinel kinds for generation errors.
var (
	ErrDisabled      = errors.New("narrative generation disabled")
	ErrUpstream      = errors.New("upstream generation failed")
	ErrEmptyResponse = errors.New("upstream returned no text")
	ErrRateLimited   = errors.New("narrative rate limit exceeded")
	ErrCircuitOpen   = errors.New("narrative circuit open")
)

// Reason maps an error to a short label for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDisabled):
		return "disabled"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "other"
	}
}
