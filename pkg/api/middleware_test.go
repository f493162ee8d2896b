package api

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var correlationIDPattern = regexp.MustCompile(`^\d{8}_\d+_\d{4}$`)

func TestNewCorrelationID_Format(t *testing.T) {
	id := newCorrelationID()
	assert.Regexp(t, correlationIDPattern, id)
}

func TestNewCorrelationID_Unique(t *testing.T) {
	a := newCorrelationID()
	b := newCorrelationID()
	assert.NotEqual(t, a, b)
}

func TestCorrelationIDMiddleware_MintsWhenAbsent(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Regexp(t, correlationIDPattern, w.Header().Get("X-Correlation-ID"))
}

func TestCorrelationIDMiddleware_EchoesInbound(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied-id", w.Header().Get("X-Correlation-ID"))
}

func TestSecurityHeaders(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
}
