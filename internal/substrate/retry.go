package substrate

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// maxAttempts is the substrate's default retry budget (spec §4.1 "three
// attempts by default").
const maxAttempts = 3

// retryRoundTripper retries server errors (5xx) and 429s with exponential
// backoff, flooring the sleep to an upstream Retry-After hint when present.
// It wraps the rate-limited transport so a 429 observed here has already
// passed through (and tightened) the per-host bucket.
type retryRoundTripper struct {
	next   http.RoundTripper
	logger *logrus.Logger
	sleep  func(time.Duration)
}

func newRetryRoundTripper(next http.RoundTripper, logger *logrus.Logger) *retryRoundTripper {
	return &retryRoundTripper{next: next, logger: logger, sleep: time.Sleep}
}

func (rt *retryRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		attemptReq := req.Clone(req.Context())
		if bodyBytes != nil {
			attemptReq.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := rt.next.RoundTrip(attemptReq)
		if err != nil {
			if !isRetriableTransportError(err) {
				return nil, err
			}
			lastErr = err
			if attempt == maxAttempts-1 {
				return nil, err
			}
			rt.sleep(backoff(attempt))
			continue
		}

		if !shouldRetryStatus(resp.StatusCode) || attempt == maxAttempts-1 {
			return resp, nil
		}

		wait := backoff(attempt)
		if ra := retryAfter(resp.Header); ra > wait {
			wait = ra
		}
		resp.Body.Close()
		if rt.logger != nil {
			rt.logger.WithFields(logrus.Fields{
				"url":     req.URL.String(),
				"status":  resp.StatusCode,
				"attempt": attempt + 1,
				"wait_ms": wait.Milliseconds(),
			}).Warn("retrying request")
		}
		rt.sleep(wait)
	}
	return nil, lastErr
}

func shouldRetryStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// isRetriableTransportError retries only timeout/connect failures; other
// transport errors propagate immediately (spec §4.1).
func isRetriableTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

func backoff(attempt int) time.Duration {
	return 100 * time.Millisecond * time.Duration(1<<uint(attempt))
}

// retryAfter parses an integer-seconds Retry-After header, returning 0 if
// absent or non-integer (spec only floors on "integer seconds").
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
