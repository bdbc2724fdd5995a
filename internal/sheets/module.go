// Package sheets provides the spreadsheet export bounded context.
package sheets

import (
	"context"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/sheets/handler"
	"leadflow_backend/internal/sheets/service"
	"leadflow_backend/platform/logger"
)

// Module is the sheets bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the export module. A missing or unusable credential
// never fails construction: the module still registers its routes and
// answers with a configuration error, matching the degrade-at-runtime
// policy for external collaborators.
func NewModule(ctx context.Context, credentialsJSON, spreadsheetID string, builder handler.RecordBuilder, log *logger.Logger) *Module {
	var svc *service.Service
	if credentialsJSON != "" && spreadsheetID != "" {
		created, err := service.New(ctx, []byte(credentialsJSON), spreadsheetID, log)
		if err != nil {
			log.Error("failed to initialize spreadsheet service; export endpoints disabled", "error", err)
		} else {
			svc = created
		}
	} else {
		log.Warn("spreadsheet export not configured; export endpoints disabled")
	}

	return &Module{
		handler: handler.New(svc, builder, log),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sheets"
}

// RegisterRoutes mounts the export routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/export", m.handler.Export)
	ctx.V1.GET("/export/status", m.handler.Status)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
