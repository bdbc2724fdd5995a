// Package handler exposes the spreadsheet export endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/sheets/service"
	"leadflow_backend/internal/sheets/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/logger"
)

const (
	msgLeadDataRequired = "lead data is required"
	msgNotConfigured    = "spreadsheet export is not configured"
	msgExportFailed     = "failed to export lead to spreadsheet"
)

// RecordBuilder maps the legacy flat export payload into the current record
// shape. The leads service satisfies it.
type RecordBuilder interface {
	BuildExportRecord(lead domain.LeadData, score domain.ScoreResult, leadID string) domain.ExportRecord
}

// Handler handles HTTP requests for the spreadsheet export.
type Handler struct {
	svc     *service.Service
	builder RecordBuilder
	log     *logger.Logger
}

// New creates a new export handler. svc is nil when the spreadsheet
// credential or id is absent; the endpoints then answer with a structured
// configuration error.
func New(svc *service.Service, builder RecordBuilder, log *logger.Logger) *Handler {
	return &Handler{svc: svc, builder: builder, log: log}
}

// Export appends one qualified lead to the spreadsheet.
// POST /api/v1/export
func (h *Handler) Export(c *gin.Context) {
	var req transport.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgLeadDataRequired)
		return
	}
	if req.ExportRecord == nil && req.LeadData == nil {
		httpkit.Error(c, http.StatusBadRequest, msgLeadDataRequired)
		return
	}

	if h.svc == nil {
		httpkit.HandleError(c, apperr.Unavailable(msgNotConfigured).WithOp("sheets.export"))
		return
	}

	record := h.resolveRecord(req)

	ctx := c.Request.Context()
	if err := h.svc.EnsureSheet(ctx); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, msgExportFailed, err).WithDetails(err.Error()))
		return
	}

	row, err := h.svc.Append(ctx, record)
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, msgExportFailed, err).WithDetails(err.Error()))
		return
	}

	httpkit.OK(c, transport.ExportResponse{
		Success:       true,
		Message:       "lead exported to spreadsheet",
		RowNumber:     row,
		SpreadsheetID: h.svc.SpreadsheetID(),
		SheetName:     service.SheetName,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// Status probes spreadsheet connectivity.
// GET /api/v1/export/status
func (h *Handler) Status(c *gin.Context) {
	if h.svc == nil {
		httpkit.HandleError(c, apperr.Unavailable(msgNotConfigured).WithOp("sheets.status"))
		return
	}

	title, err := h.svc.Probe(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to connect to spreadsheet", err).WithDetails(err.Error()))
		return
	}

	httpkit.OK(c, transport.StatusResponse{
		Success:          true,
		Message:          "spreadsheet connection working",
		SpreadsheetTitle: title,
		SpreadsheetID:    h.svc.SpreadsheetID(),
		SheetName:        service.SheetName,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
}

// resolveRecord prefers the current shape and otherwise rebuilds the record
// from the legacy flat payload.
func (h *Handler) resolveRecord(req transport.ExportRequest) domain.ExportRecord {
	if req.ExportRecord != nil {
		return *req.ExportRecord
	}

	var score domain.ScoreResult
	if req.ScoreData != nil {
		score = *req.ScoreData
	}
	return h.builder.BuildExportRecord(*req.LeadData, score, req.LeadID)
}
