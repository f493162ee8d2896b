package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHandler(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	w := newRecorder()
	server.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.TaskTags, 8)
	assert.NotEmpty(t, resp.LLMProviders)
	assert.NotEmpty(t, resp.OCRProviders)
	assert.Equal(t, 1, resp.Orchestrator.MaxPlanRevisions)
}

func TestConfigHandler_NeverReturnsCredentialFields(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	w := newRecorder()
	server.engine.ServeHTTP(w, req)

	body := w.Body.String()
	assert.NotContains(t, body, "apiKey")
	assert.NotContains(t, body, "endpoint")
}
