package biomcperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NotFound("gene", "NOTAGENE", "try `biomcp gene search NOTAGENE`")
	require.Equal(t, KindNotFound, err.Kind)
	assert.Contains(t, err.Error(), "NOTAGENE")
	assert.Contains(t, err.Error(), "try `biomcp gene search NOTAGENE`")
}

func TestAPIStatusExcerpt(t *testing.T) {
	err := APIStatus("openfda", 503, "Service Unavailable")
	assert.Equal(t, "openfda: HTTP 503: Service Unavailable", err.Error())
	assert.Contains(t, err.Error(), "openfda")
	assert.Contains(t, err.Error(), "503")
}

func TestIsKind(t *testing.T) {
	err := InvalidArgument("offset %d exceeds window", 10000)
	assert.True(t, IsKind(err, KindInvalidArgument))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(assertErr{}, KindInvalidArgument))
}

type assertErr struct{}

func (assertErr) Error() string { return "plain error" }

func TestToMCPError(t *testing.T) {
	err := APIKeyRequired("nci_cts", "NCI_API_KEY", "https://docs.example/nci")
	mcpErr := ToMCPError(err, "req-1")
	assert.Equal(t, string(KindAPIKeyRequired), mcpErr.Code)
	assert.Equal(t, "req-1", mcpErr.RequestID)
	assert.False(t, mcpErr.Timestamp.IsZero())
}

func TestUnwrap(t *testing.T) {
	cause := assertErr{}
	err := HTTP(cause)
	require.ErrorIs(t, err, cause)
}
