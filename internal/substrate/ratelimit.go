package substrate

import (
	"net/http"
	"sync"
	"time"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// hostLimit is the documented baseline rate for a handful of upstream hosts;
// anything unlisted falls back to defaultHostRate. Figures are requests per
// second, chosen conservatively relative to each upstream's published
// guidance (BioThings ~3 rps per service, NCBI E-utilities 3-10 rps,
// OpenFDA ~40/min without a key).
var hostLimit = map[string]rate.Limit{
	"mygene.info":               3,
	"myvariant.info":            3,
	"mychem.info":               3,
	"mydisease.info":            3,
	"eutils.ncbi.nlm.nih.gov":   3,
	"www.ebi.ac.uk":             5,
	"api.fda.gov":               0.66,
	"clinicaltrials.gov":        5,
	"clinicaltrialsapi.cancer.gov": 2,
}

const (
	defaultHostRate = rate.Limit(5)
	defaultBurst    = 3
	cooldownPeriod  = 60 * time.Second
)

type hostBucket struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	baseline  rate.Limit
	throttled bool
	cooldownT time.Time
}

// hostRegistry is the process-wide per-host rate-limit state (spec §5
// "process-wide and mutated by the substrate middleware").
type hostRegistry struct {
	mu      sync.Mutex
	buckets map[string]*hostBucket
	breakers map[string]*gobreaker.CircuitBreaker
}

func newHostRegistry() *hostRegistry {
	return &hostRegistry{
		buckets:  make(map[string]*hostBucket),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (r *hostRegistry) bucket(host string) *hostBucket {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buckets[host]; ok {
		return b
	}
	baseline, ok := hostLimit[host]
	if !ok {
		baseline = defaultHostRate
	}
	b := &hostBucket{limiter: rate.NewLimiter(baseline, defaultBurst), baseline: baseline}
	r.buckets[host] = b
	return b
}

func (r *hostRegistry) breaker(host string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.breakers[host]; ok {
		return b
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	r.breakers[host] = cb
	return cb
}

// throttle tightens the bucket after a 429 or documented soft-limit signal;
// it does not recover until cooldownPeriod has elapsed (spec §4.1 "Rate
// limit").
func (b *hostBucket) throttle() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.throttled {
		b.limiter.SetLimit(b.baseline / 2)
		b.throttled = true
	}
	b.cooldownT = time.Now().Add(cooldownPeriod)
}

func (b *hostBucket) maybeRecover() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.throttled && time.Now().After(b.cooldownT) {
		b.limiter.SetLimit(b.baseline)
		b.throttled = false
	}
}

// rateLimitRoundTripper is the innermost middleware: it waits for a token
// before sending, and tightens the bucket / trips the breaker on throttling
// signals.
type rateLimitRoundTripper struct {
	next http.RoundTripper
	reg  *hostRegistry
}

func newRateLimitRoundTripper(next http.RoundTripper, reg *hostRegistry) *rateLimitRoundTripper {
	return &rateLimitRoundTripper{next: next, reg: reg}
}

func (rt *rateLimitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	host := req.URL.Hostname()
	bucket := rt.reg.bucket(host)
	bucket.maybeRecover()

	if err := bucket.limiter.Wait(req.Context()); err != nil {
		return nil, biomcperr.HTTPMiddleware(err)
	}

	breaker := rt.reg.breaker(host)
	result, err := breaker.Execute(func() (any, error) {
		resp, err := rt.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || isSoftLimitSignal(resp.Header) {
			bucket.throttle()
		}
		if resp.StatusCode >= 500 {
			return resp, errUpstreamServerError
		}
		return resp, nil
	})

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, biomcperr.SourceUnavailable(host, "circuit open after repeated failures", "retry later or use a different source")
	}
	if result == nil {
		if err != nil {
			return nil, err
		}
		return nil, biomcperr.HTTPMiddleware(err)
	}
	resp := result.(*http.Response)
	// errUpstreamServerError is only used to flip the breaker's failure
	// count; the 5xx response itself is still returned for the retry layer
	// to act on.
	return resp, nil
}

// errUpstreamServerError is a sentinel the breaker counts as a failure
// without being surfaced to callers (the actual *http.Response carrying the
// 5xx is still returned up the chain).
var errUpstreamServerError = &breakerSentinel{}

type breakerSentinel struct{}

func (*breakerSentinel) Error() string { return "upstream server error" }

// isSoftLimitSignal recognizes documented soft-limit headers from upstreams
// that throttle without a 429 (e.g. OpenFDA's X-RateLimit-Remaining).
func isSoftLimitSignal(h http.Header) bool {
	return h.Get("X-RateLimit-Remaining") == "0"
}
