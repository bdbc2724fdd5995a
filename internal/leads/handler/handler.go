// Package handler exposes the chat and analysis endpoints.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

const (
	msgMessageRequired  = "message is required"
	msgLeadDataRequired = "lead data is required"

	internalErrorReply = "Sorry, an internal error occurred. Please try again in a few moments."
)

// Handler handles HTTP requests for the lead qualification pipeline.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// Chat processes one conversation turn.
// POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	// The chat UI treats any non-200 as a broken conversation, so internal
	// failures answer with a conversational apology instead of an error
	// status. Request validation is the only 400 on this route.
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("chat turn panicked", "panic", r)
			c.JSON(http.StatusOK, transport.ChatResponse{
				Response: internalErrorReply,
			})
		}
	}()

	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMessageRequired)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMessageRequired)
		return
	}

	result := h.svc.HandleTurn(c.Request.Context(), service.TurnRequest{
		Message:   req.Message,
		Collected: req.CollectedData,
		History:   req.ConversationHistory,
	})

	resp := transport.ChatResponse{
		Response:     result.Response,
		UpdatedData:  result.UpdatedData,
		IsComplete:   result.IsComplete,
		Confidence:   result.Confidence,
		Score:        result.Score,
		ExportRecord: result.ExportRecord,
		IsHotLead:    result.IsHotLead,
	}
	if result.LeadID != "" {
		resp.LeadID = &result.LeadID
	}

	httpkit.OK(c, resp)
}

// Analyze runs a standalone qualification pass over supplied lead data.
// POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req transport.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgLeadDataRequired)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgLeadDataRequired)
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), *req.LeadData, req.ConversationHistory, req.LeadID)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "internal error during lead analysis")
		return
	}

	httpkit.OK(c, transport.AnalyzeResponse{
		Success:      true,
		Score:        result.Score,
		ExportRecord: result.ExportRecord,
		LeadID:       result.LeadID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
