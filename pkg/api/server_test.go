package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_CORSAllowsConfiguredOrigin(t *testing.T) {
	// DefaultHTTPConfig's CORSAllowedOrigins is ["*"]; the cors middleware
	// is wired into the gin engine at NewServer time from that value, so
	// any Origin is allowed and answered with the "*" wildcard.
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://caller.example")
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_BodySizeLimitRejectsOversizedPayload(t *testing.T) {
	server, _ := newTestServer(t)

	oversized := bytes.Repeat([]byte("a"), (33<<20)+1)
	req := httptest.NewRequest(http.MethodPost, "/evaluate", bytes.NewReader(oversized))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.GreaterOrEqual(t, w.Code, http.StatusBadRequest)
}
