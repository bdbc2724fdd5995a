package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/promptlog/store"
)

func newTestRouter() (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	s := store.New(10)
	h := New(s)

	engine := gin.New()
	engine.GET("/api/v1/prompts", h.List)
	engine.POST("/api/v1/prompts", h.Append)
	engine.DELETE("/api/v1/prompts", h.Clear)
	return engine, s
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

type listPayload struct {
	Success   bool              `json:"success"`
	Data      []json.RawMessage `json:"data"`
	Count     int               `json:"count"`
	SessionID string            `json:"sessionId"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listPayload {
	t.Helper()
	var payload listPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestListEmptyLog(t *testing.T) {
	engine, s := newTestRouter()

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/prompts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload := decodeList(t, rec)
	if !payload.Success || payload.Count != 0 {
		t.Fatalf("expected empty success payload, got %+v", payload)
	}
	if payload.SessionID != s.SessionID() {
		t.Fatalf("expected session id %q, got %q", s.SessionID(), payload.SessionID)
	}
}

func TestListWithLimit(t *testing.T) {
	engine, s := newTestRouter()
	s.Record("one", "p", "r", nil, false, 0.5, "")
	s.Record("two", "p", "r", nil, false, 0.5, "")
	s.Record("three", "p", "r", nil, false, 0.5, "")

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/prompts?limit=2", "")
	if payload := decodeList(t, rec); payload.Count != 2 {
		t.Fatalf("expected 2 entries, got %d", payload.Count)
	}
}

func TestListBySessionFiltersOut(t *testing.T) {
	engine, s := newTestRouter()
	s.Record("one", "p", "r", nil, false, 0.5, "")

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/prompts?sessionId=session_other", "")
	if payload := decodeList(t, rec); payload.Count != 0 {
		t.Fatalf("expected no entries for foreign session, got %d", payload.Count)
	}
}

func TestListRejectsNonNumericHours(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/prompts?hours=soon", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAppendRequiresCoreFields(t *testing.T) {
	engine, _ := newTestRouter()

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/prompts", `{"userMessage": "hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAppendStoresEntry(t *testing.T) {
	engine, s := newTestRouter()

	body := `{"userMessage": "hi", "prompt": "p", "response": "r", "confidence": 0.7}`
	rec := doRequest(t, engine, http.MethodPost, "/api/v1/prompts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	entries := s.All()
	if len(entries) != 1 || entries[0].UserMessage != "hi" || entries[0].Confidence != 0.7 {
		t.Fatalf("unexpected stored entries: %+v", entries)
	}
}

func TestClearEmptiesLog(t *testing.T) {
	engine, s := newTestRouter()
	s.Record("one", "p", "r", nil, false, 0.5, "")

	rec := doRequest(t, engine, http.MethodDelete, "/api/v1/prompts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(s.All()) != 0 {
		t.Fatal("expected log cleared")
	}
}
