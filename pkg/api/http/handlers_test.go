package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRoot(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RootResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DevOps API is running!", resp.Message)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHandleHealthIsFixed(t *testing.T) {
	s := newTestServer(t)

	first := doRequest(t, s, http.MethodGet, "/health").Body.String()
	for i := 0; i < 10; i++ {
		got := doRequest(t, s, http.MethodGet, "/health").Body.String()
		assert.Equal(t, first, got)
	}
}
