package ghclient

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// ErrRateLimited is returned when the GitHub API rate limit has been exceeded.
var ErrRateLimited = errors.New("GitHub API rate limit exceeded")

// rateLimitLowWatermark is the remaining-request count below which a debug
// notice is logged. Anonymous clients start at 60 requests per hour.
const rateLimitLowWatermark = 10

// RateLimitState tracks the rate limit window across requests.
type RateLimitState struct {
	mu        sync.RWMutex
	limited   bool
	resetAt   time.Time
	remaining int
	limit     int
}

var globalRateLimitState = &RateLimitState{}

// IsLimited reports whether the limit is exhausted and its window has not
// reset yet.
func (s *RateLimitState) IsLimited() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limited && time.Now().Before(s.resetAt)
}

// SetLimited sets the rate limit state.
func (s *RateLimitState) SetLimited(limited bool, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limited = limited
	s.resetAt = resetAt
}

// Update records the window reported by a response's headers. A remaining
// count of zero marks the limit exhausted.
func (s *RateLimitState) Update(remaining, limit int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
	s.limit = limit
	s.resetAt = resetAt
	if remaining == 0 {
		s.limited = true
	}
}

// rateLimitTransport fails fast while the GitHub rate limit is exhausted
// instead of burning requests that are known to be rejected. It never
// retries.
type rateLimitTransport struct {
	base http.RoundTripper
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if globalRateLimitState.IsLimited() {
		return nil, ErrRateLimited
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		globalRateLimitState.Update(remaining, limit, resetAt)
	}
	if remaining > 0 && remaining <= rateLimitLowWatermark {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	if exhausted(resp) {
		globalRateLimitState.SetLimited(true, resetAt)
		_ = resp.Body.Close()
		return nil, ErrRateLimited
	}
	return resp, nil
}

// exhausted reports whether the response is GitHub's rate limit rejection:
// 429, or 403 with no requests remaining.
func exhausted(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// parseRateLimitHeaders reads the window from the X-RateLimit-* headers.
// Remaining and limit are -1 when absent.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = headerInt(resp, "X-RateLimit-Remaining")
	limit = headerInt(resp, "X-RateLimit-Limit")
	if raw := resp.Header.Get("X-RateLimit-Reset"); raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			resetAt = time.Unix(unix, 0)
		}
	}
	return remaining, limit, resetAt
}

// headerInt parses an integer header, returning -1 when absent or malformed.
func headerInt(resp *http.Response, key string) int {
	raw := resp.Header.Get(key)
	if raw == "" {
		return -1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
