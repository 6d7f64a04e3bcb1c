package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	result  *models.ClassificationResult
	err     error
	lastReq *models.ClassifyRequest
}

func (s *stubClassifier) Classify(
	_ context.Context,
	req *models.ClassifyRequest,
) (*models.ClassificationResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func testAppState(classifier models.IntentClassifier) *models.AppState {
	return &models.AppState{
		Router: classifier,
		Orchestrator: &models.OrchestratorConfig{
			Tools: []models.Tool{
				{Name: "task", Description: "manage tasks"},
				{Name: "contact", Description: "manage contacts"},
			},
		},
		Config: &config.Config{},
	}
}

func TestClassifyRoute(t *testing.T) {
	classifier := &stubClassifier{
		result: &models.ClassificationResult{
			Intents: []models.Intent{
				{
					Type:         "task",
					Action:       models.ActionList,
					OriginalText: "Show me my tasks",
				},
			},
		},
	}
	router := setupRouter(testAppState(classifier))

	body := `{"input": "Show me my tasks", "conversationHistory": [{"role": "human", "content": "hi"}]}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/classify",
		bytes.NewBufferString(body),
	)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var result models.ClassificationResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	require.Len(t, result.Intents, 1)
	assert.Equal(t, "task", result.Intents[0].Type)

	require.NotNil(t, classifier.lastReq)
	assert.Equal(t, "Show me my tasks", classifier.lastReq.Input)
	require.Len(t, classifier.lastReq.History, 1)
	assert.Equal(t, models.RoleHuman, classifier.lastReq.History[0].Role)
}

func TestClassifyRoute_AssignsTraceID(t *testing.T) {
	classifier := &stubClassifier{result: &models.ClassificationResult{}}
	router := setupRouter(testAppState(classifier))

	body := `{"input": "hi", "traceContext": {"userId": "user-1"}}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/classify",
		strings.NewReader(body),
	)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header().Get(traceIDHeader))
	require.NotNil(t, classifier.lastReq.Principal)
	assert.NotEmpty(t, classifier.lastReq.Principal.TraceID)
}

func TestClassifyRoute_EmptyInput(t *testing.T) {
	classifier := &stubClassifier{err: models.ErrEmptyInput}
	router := setupRouter(testAppState(classifier))

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/classify",
		strings.NewReader(`{"input": ""}`),
	)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestClassifyRoute_MalformedBody(t *testing.T) {
	router := setupRouter(testAppState(&stubClassifier{}))

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/classify",
		strings.NewReader("{not json"),
	)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestToolsRoute(t *testing.T) {
	router := setupRouter(testAppState(&stubClassifier{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var catalog models.ToolCatalogResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&catalog))
	require.Len(t, catalog.Tools, 2)
	assert.Equal(t, "task", catalog.Tools[0].Name)
	assert.Equal(t, []string{"greeting", "clarification"}, catalog.SystemIntents)
}

func TestHeartbeatRoute(t *testing.T) {
	router := setupRouter(testAppState(&stubClassifier{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestSendVersion(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	handler := SendVersion(nextHandler)

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get(versionHeader) != config.VersionString {
		t.Errorf("handler returned wrong version header: got %v want %v",
			rr.Header().Get(versionHeader), config.VersionString)
	}
}
