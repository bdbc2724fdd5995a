// Package handler exposes the prompt log query endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/promptlog/store"
	"leadflow_backend/platform/httpkit"
)

// Handler handles HTTP requests for the prompt log.
type Handler struct {
	store *store.Store
}

// New creates a new prompt log handler.
func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

type listResponse struct {
	Success   bool          `json:"success"`
	Data      []store.Entry `json:"data"`
	Count     int           `json:"count"`
	SessionID string        `json:"sessionId"`
}

type appendRequest struct {
	UserMessage   string      `json:"userMessage"`
	Prompt        string      `json:"prompt"`
	Response      string      `json:"response"`
	ExtractedData interface{} `json:"extractedData"`
	IsComplete    bool        `json:"isComplete"`
	Confidence    float64     `json:"confidence"`
	LeadID        string      `json:"leadId"`
}

// List queries the log, filterable by session id, recency window in hours,
// or a tail limit. Filters are mutually exclusive with this precedence:
// sessionId, hours, limit.
// GET /api/v1/prompts
func (h *Handler) List(c *gin.Context) {
	var entries []store.Entry

	switch {
	case c.Query("sessionId") != "":
		entries = h.store.BySession(c.Query("sessionId"))
	case c.Query("hours") != "":
		hours, err := strconv.Atoi(c.Query("hours"))
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "hours must be an integer")
			return
		}
		entries = h.store.Since(hours)
	case c.Query("limit") != "":
		limit, err := strconv.Atoi(c.Query("limit"))
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		entries = h.store.Recent(limit)
	default:
		entries = h.store.All()
	}

	httpkit.OK(c, listResponse{
		Success:   true,
		Data:      entries,
		Count:     len(entries),
		SessionID: h.store.SessionID(),
	})
}

// Append records an entry supplied by an external caller.
// POST /api/v1/prompts
func (h *Handler) Append(c *gin.Context) {
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserMessage == "" || req.Prompt == "" || req.Response == "" {
		httpkit.Error(c, http.StatusBadRequest, "userMessage, prompt and response are required")
		return
	}

	extracted := req.ExtractedData
	if extracted == nil {
		extracted = map[string]interface{}{}
	}
	h.store.Record(req.UserMessage, req.Prompt, req.Response, extracted, req.IsComplete, req.Confidence, req.LeadID)

	httpkit.OK(c, gin.H{
		"success":   true,
		"message":   "prompt logged",
		"sessionId": h.store.SessionID(),
	})
}

// Clear drops every retained entry.
// DELETE /api/v1/prompts
func (h *Handler) Clear(c *gin.Context) {
	h.store.Clear()
	httpkit.OK(c, gin.H{
		"success": true,
		"message": "logs cleared",
	})
}
