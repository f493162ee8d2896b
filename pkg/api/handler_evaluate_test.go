package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := newRecorder()
	server.engine.ServeHTTP(w, req)
	return w
}

func TestEvaluateHandler_Success(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/evaluate", EvaluateRequest{
		Items: []models.EvaluationItem{
			{ID: "a", ControlDescription: "desc", TestProcedure: "proc"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var results []models.EvaluationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
}

func TestEvaluateHandler_EmptyItems(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/evaluate", EvaluateRequest{Items: nil})

	assert.Equal(t, models.ErrorKindBadRequest.HTTPStatus(), w.Code)
}

func TestEvaluateHandler_TooLarge(t *testing.T) {
	server, _ := newTestServer(t)
	server.cfg.Batch.MaxSyncBatchSize = 1

	w := doJSON(t, server, http.MethodPost, "/evaluate", EvaluateRequest{
		Items: []models.EvaluationItem{
			{ID: "a", ControlDescription: "d", TestProcedure: "p"},
			{ID: "b", ControlDescription: "d", TestProcedure: "p"},
		},
	})

	assert.Equal(t, models.ErrorKindRequestTooLarge.HTTPStatus(), w.Code)
}

func TestEvaluateHandler_DuplicateIDs(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/evaluate", EvaluateRequest{
		Items: []models.EvaluationItem{
			{ID: "dup", ControlDescription: "d", TestProcedure: "p"},
			{ID: "dup", ControlDescription: "d", TestProcedure: "p"},
		},
	})

	assert.Equal(t, models.ErrorKindBadRequest.HTTPStatus(), w.Code)
}

func TestEvaluateHandler_MalformedJSON(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/evaluate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := newRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, models.ErrorKindBadRequest.HTTPStatus(), w.Code)
}
