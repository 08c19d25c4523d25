// Package httputil provides HTTP utilities for the AI model client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff, doubling the delay after each failed
// attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return callModel(ctx)
//	})
//
// Only errors wrapped with [RetryableError] are retried; everything else
// (bad requests, auth failures, malformed responses) returns immediately.
package httputil
