package sources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubstrateClient(t *testing.T) *substrate.Client {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	c, err := substrate.Get(nil)
	require.NoError(t, err)
	return c
}

func TestBiothingsGetMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()
	t.Setenv("BIOMCP_MYGENE_BASE", srv.URL)

	c := newTestSubstrateClient(t)
	mg := NewMyGeneClient(c)
	_, err := mg.Get(t.Context(), "673")
	require.Error(t, err)
	assert.True(t, biomcperr.IsKind(err, biomcperr.KindNotFound))
}

func TestBiothingsQueryValidatesWindow(t *testing.T) {
	c := newTestSubstrateClient(t)
	mg := NewMyGeneClient(c)
	_, _, err := mg.Query(t.Context(), "symbol:BRAF", 10, 9995)
	require.Error(t, err)
	assert.True(t, biomcperr.IsKind(err, biomcperr.KindInvalidArgument))
}
