package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/logger"
)

// A present but unusable credential must degrade like an absent one: the
// module still constructs, registers its routes, and answers with the
// configuration error instead of taking the process down.
func TestNewModuleSurvivesMalformedCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	module := NewModule(context.Background(), "not a service-account json", "sheet-id", nil, logger.New("test"))
	if module == nil {
		t.Fatal("expected a degraded module, got nil")
	}

	engine := gin.New()
	module.RegisterRoutes(&apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	})

	body := `{"exportRecord": {"leadId": "lead_1"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 configuration error, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Fatalf("expected configuration error body, got %s", rec.Body.String())
	}
}

func TestNewModuleWithoutConfigurationRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	module := NewModule(context.Background(), "", "", nil, logger.New("test"))

	engine := gin.New()
	module.RegisterRoutes(&apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/status", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 configuration error, got %d", rec.Code)
	}
}
