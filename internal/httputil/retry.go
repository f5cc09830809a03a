// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the bibliographic lookups.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay is the first backoff after a retryable response. Tests
// override this to avoid real sleeps.
var RetryBaseDelay = time.Second

// MaxRetryDelay caps a single wait, including waits the server asks for.
var MaxRetryDelay = 30 * time.Second

const defaultMaxRetries = 3

// Retryable reports whether status signals a transient condition worth
// retrying: rate limiting (429) or a temporarily unavailable service (503).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries retryable responses.
// The wait honors a Retry-After header and otherwise doubles from
// RetryBaseDelay on each attempt, never exceeding MaxRetryDelay.
//
// When maxRetries is 0 the default (3) is used. Before each wait the
// response body is drained and closed. If the context is cancelled during
// a wait the function returns ctx.Err(). After exhausting retries the last
// response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		delay := retryDelay(resp, attempt)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		zerolog.Ctx(ctx).Debug().
			Str("host", req.URL.Host).
			Int("status", resp.StatusCode).
			Dur("backoff", delay).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("transient response, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryDelay returns how long to wait before retrying after resp.
// Retry-After may be delay-seconds or an HTTP date.
func retryDelay(resp *http.Response, attempt int) time.Duration {
	if v := strings.TrimSpace(resp.Header.Get("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return min(time.Duration(secs)*time.Second, MaxRetryDelay)
		}
		if at, err := http.ParseTime(v); err == nil {
			return min(max(time.Until(at), 0), MaxRetryDelay)
		}
	}
	if attempt > 16 {
		return MaxRetryDelay
	}
	return min(RetryBaseDelay<<attempt, MaxRetryDelay)
}
