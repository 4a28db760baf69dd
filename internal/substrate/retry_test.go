package substrate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedRoundTripper struct {
	responses []*http.Response
	calls     int
}

func (f *fixedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	resp := f.responses[f.calls]
	f.calls++
	resp.Request = req
	return resp, nil
}

func newResp(status int, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Header: h, Body: http.NoBody}
}

func TestRetryRoundTripperRetriesServerError(t *testing.T) {
	inner := &fixedRoundTripper{responses: []*http.Response{
		newResp(503, nil),
		newResp(200, nil),
	}}
	var slept []time.Duration
	rt := newRetryRoundTripper(inner, nil)
	rt.sleep = func(d time.Duration) { slept = append(slept, d) }

	req := httptest.NewRequest(http.MethodGet, "https://mygene.info/v3/gene/673", nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, 2, inner.calls)
	require.Len(t, slept, 1)
	require.Equal(t, 100*time.Millisecond, slept[0])
}

func TestRetryAfterFloor(t *testing.T) {
	inner := &fixedRoundTripper{responses: []*http.Response{
		newResp(429, map[string]string{"Retry-After": "5"}),
		newResp(200, nil),
	}}
	var slept []time.Duration
	rt := newRetryRoundTripper(inner, nil)
	rt.sleep = func(d time.Duration) { slept = append(slept, d) }

	req := httptest.NewRequest(http.MethodGet, "https://api.fda.gov/drug/event.json", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Len(t, slept, 1)
	require.GreaterOrEqual(t, slept[0], 5*time.Second)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &fixedRoundTripper{responses: []*http.Response{
		newResp(500, nil), newResp(500, nil), newResp(500, nil),
	}}
	rt := newRetryRoundTripper(inner, nil)
	rt.sleep = func(time.Duration) {}

	req := httptest.NewRequest(http.MethodGet, "https://mygene.info/v3/gene/673", nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, 500, resp.StatusCode)
	require.Equal(t, maxAttempts, inner.calls)
}
