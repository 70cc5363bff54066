package github

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

const defaultMaxWait = 5 * time.Second

// * RateLimiter tracks the X-RateLimit headers of every response. When the
// * quota is spent it waits for the reset only if the reset is within maxWait,
// * otherwise the request fails with a rate_limited upstream error.
type RateLimiter struct {
	mu          sync.Mutex
	remaining   int
	reset       time.Time
	lowWarn     int
	retryAfter  time.Duration
	retryStatus int
	maxWait     time.Duration
}

func NewRateLimiter(maxWait time.Duration) *RateLimiter {
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	return &RateLimiter{
		remaining:   5000,
		reset:       time.Now(),
		lowWarn:     100,
		retryStatus: http.StatusTooManyRequests,
		maxWait:     maxWait,
	}
}

func (r *RateLimiter) reserve(req *http.Request) error {
	r.mu.Lock()
	remaining, reset := r.remaining, r.reset
	r.mu.Unlock()

	if remaining > 0 || !time.Now().Before(reset) {
		return nil
	}

	waitTime := time.Until(reset)
	if waitTime > r.maxWait {
		return errors.Upstream(
			errors.UpstreamRateLimited,
			"GitHub rate limit exceeded",
			fmt.Sprintf("Rate limit resets at %s", reset.Format(time.RFC1123)),
			nil,
		).WithOperation("github request")
	}

	logger.Warn("[RateLimiter] Rate limit exceeded. Waiting %v until reset at %v", waitTime, reset)
	return sleep(req, waitTime)
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	r.retryAfter = 0
	if retry := headers.Get("Retry-After"); retry != "" {
		if seconds, err := strconv.Atoi(retry); err == nil {
			r.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := r.reserve(req); err != nil {
			return nil, err
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)

		// * Retry a 429 once, and only when Retry-After fits within maxWait
		if resp.StatusCode == r.retryStatus && req.Body == nil {
			r.mu.Lock()
			wait := r.retryAfter
			r.mu.Unlock()

			if wait > 0 && wait <= r.maxWait {
				logger.Warn("[RateLimiter] Received 429. Retrying after %v...", wait)
				resp.Body.Close()
				if err := sleep(req, wait); err != nil {
					return nil, err
				}

				resp, err = next.RoundTrip(req)
				if err != nil {
					return nil, err
				}
				r.updateFromHeaders(resp.Header)
			}
		}

		return resp, nil
	})
}

func sleep(req *http.Request, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
