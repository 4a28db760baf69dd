// Package substrate is the shared HTTP substrate every source client is
// built on: one long-lived client, a cache → retry → rate-limit middleware
// stack, and the cross-cutting validators source clients need before they
// ever touch the network (spec §4.1).
package substrate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate/cache"
	"github.com/sirupsen/logrus"
)

const (
	totalTimeout  = 30 * time.Second
	connectTimeout = 10 * time.Second
	userAgent     = "biomcp-go/1.0 (+https://github.com/biomcp-go/biomcp)"
)

// Client is the process-wide shared HTTP substrate. Construct with Get(),
// never with &Client{} directly.
type Client struct {
	http      *http.Client
	streaming *http.Client
	cacheStore *cache.Store
	registry  *hostRegistry
	logger    *logrus.Logger
}

var (
	singleton     *Client
	singletonOnce sync.Once
	singletonErr  error
)

// Get returns the process-wide Client, creating it on first call (spec §3
// "created once per process on first use and live until exit"; §5 "lazy
// initialization with race tolerance" via sync.Once).
func Get(logger *logrus.Logger) (*Client, error) {
	singletonOnce.Do(func() {
		singleton, singletonErr = newClient(logger)
	})
	return singleton, singletonErr
}

func newClient(logger *logrus.Logger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	dir, err := cache.Dir()
	if err != nil {
		return nil, biomcperr.HTTPClientInit(err)
	}
	store, err := cache.Open(dir)
	if err != nil {
		return nil, biomcperr.HTTPClientInit(err)
	}

	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: 8,
	}

	registry := newHostRegistry()
	withRateLimit := newRateLimitRoundTripper(transport, registry)
	withRetry := newRetryRoundTripper(withRateLimit, logger)

	c := &Client{
		http: &http.Client{
			Transport: &cacheRoundTripper{next: withRetry, store: store, logger: logger},
			Timeout:   totalTimeout,
		},
		streaming: &http.Client{
			Transport: transport,
			Timeout:   totalTimeout,
		},
		cacheStore: store,
		registry:   registry,
		logger:     logger,
	}
	return c, nil
}

// Do sends req through the full cache → retry → rate-limit stack. api names
// the calling source client, used to tag Api errors produced from non-2xx
// responses, oversized bodies, and HTML mis-typed responses.
func (c *Client) Do(req *http.Request, api string) ([]byte, *http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get("Cache-Control") == "" {
		req.Header.Set("Cache-Control", "max-stale=86400")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, biomcperr.HTTP(err)
	}
	defer resp.Body.Close()

	body, err := ReadBodyCapped(resp.Body, api)
	if err != nil {
		return nil, resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp, biomcperr.APIStatus(api, resp.StatusCode, SanitizeExcerpt(body))
	}

	if err := EnsureJSONContentType(api, resp.Header.Get("Content-Type"), body); err != nil {
		return nil, resp, err
	}
	if resp.Header.Get("Content-Type") != "" &&
		!strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "json") &&
		!strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "xml") {
		c.logger.WithFields(logrus.Fields{"api": api, "content_type": resp.Header.Get("Content-Type")}).
			Warn("unexpected content type, attempting to decode anyway")
	}

	return body, resp, nil
}

// StreamingDo sends req on the middleware-free streaming client, for bodies
// that cannot be safely cloned for a retry (multipart uploads, large
// downloads). Callers that need retry semantics should use DoWithRetry.
func (c *Client) StreamingDo(req *http.Request) (*http.Response, error) {
	resp, err := c.streaming.Do(req)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	return resp, nil
}

// DoWithRetry reconstructs req via build on each attempt and sends it on the
// streaming client, since that client has no retry middleware of its own
// (spec §4.1 point 2, §9 "Streaming bodies").
func (c *Client) DoWithRetry(ctx context.Context, api string, build func() (*http.Request, error)) ([]byte, *http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, nil, err
		}
		req = req.WithContext(ctx)
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.streaming.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts-1 {
				time.Sleep(backoff(attempt))
				continue
			}
			return nil, nil, biomcperr.HTTP(err)
		}

		if shouldRetryStatus(resp.StatusCode) && attempt < maxAttempts-1 {
			wait := backoff(attempt)
			if ra := retryAfter(resp.Header); ra > wait {
				wait = ra
			}
			resp.Body.Close()
			time.Sleep(wait)
			continue
		}

		defer resp.Body.Close()
		body, err := ReadBodyCapped(resp.Body, api)
		if err != nil {
			return nil, resp, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, resp, biomcperr.APIStatus(api, resp.StatusCode, SanitizeExcerpt(body))
		}
		return body, resp, nil
	}
	return nil, nil, biomcperr.HTTP(lastErr)
}

// Logger exposes the shared structured logger to source clients and
// orchestrators.
func (c *Client) Logger() *logrus.Logger { return c.logger }

// BaseURL resolves the BIOMCP_<SOURCE>_BASE override, falling back to
// fallback when unset (spec §4.1 "Configurable base URLs").
func BaseURL(source, fallback string) string {
	key := fmt.Sprintf("BIOMCP_%s_BASE", strings.ToUpper(source))
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NCBIAPIKey returns the configured NCBI API key, if any (spec §4.1 "NCBI
// API-key policy").
func NCBIAPIKey() (string, bool) {
	v := os.Getenv("NCBI_API_KEY")
	return v, v != ""
}

// OpenFDAAPIKey returns the configured openFDA API key, if any (spec §4.2
// "OpenFDA: supports an optional API key").
func OpenFDAAPIKey() (string, bool) {
	v := os.Getenv("OPENFDA_API_KEY")
	return v, v != ""
}

// cacheRoundTripper is the outermost middleware layer: cached hits bypass
// retry and rate-limiting entirely (spec §4.1 "cache is outermost").
type cacheRoundTripper struct {
	next   http.RoundTripper
	store  *cache.Store
	logger *logrus.Logger
}

func (rt *cacheRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	noStore := req.Header.Get("X-Biomcp-No-Store") == "1"
	noCache, isSet := NoCache(req.Context())
	if isSet && noCache {
		noStore = true
	}
	if req.Header.Get("Authorization") != "" || req.Header.Get("X-API-KEY") != "" || req.URL.Query().Get("api_key") != "" {
		noStore = true
	}

	key := cache.Key(req.Method, req.URL.String())

	if !noStore && req.Method == http.MethodGet {
		if entry, ok := rt.store.Get(req.Context(), key); ok && entry.Fresh(time.Now()) {
			return &http.Response{
				StatusCode: entry.Status,
				Header:     entry.Header,
				Body:       io.NopCloser(bytes.NewReader(entry.Body)),
				Request:    req,
			}, nil
		}
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if !noStore && req.Method == http.MethodGet && resp.StatusCode == http.StatusOK &&
		cache.Cacheable(noStore, resp.Header) {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr == nil {
			entry := &cache.Entry{
				Status:    resp.StatusCode,
				Header:    resp.Header.Clone(),
				Body:      body,
				StoredAt:  time.Now().UTC(),
				ExpiresAt: cache.Expiry(resp.Header, time.Now().UTC()),
			}
			if putErr := rt.store.Put(req.Context(), key, entry); putErr != nil {
				rt.logger.WithError(putErr).Warn("failed to persist http cache entry")
			}
			resp.Body = io.NopCloser(bytes.NewReader(body))
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(nil))
		}
	}

	return resp, nil
}
