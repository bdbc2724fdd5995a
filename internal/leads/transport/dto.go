// Package transport defines the wire contracts for the lead qualification
// endpoints.
package transport

import "leadflow_backend/internal/leads/domain"

// ChatRequest is one inbound chat turn. The caller resends the full
// collected data and history each turn; the server is stateless.
type ChatRequest struct {
	Message             string                       `json:"message" validate:"required"`
	CollectedData       domain.LeadData              `json:"collectedData"`
	ConversationHistory []domain.ConversationMessage `json:"conversationHistory"`
}

// ChatResponse is the composed result of one chat turn.
type ChatResponse struct {
	Response     string               `json:"response"`
	UpdatedData  domain.LeadData      `json:"updatedData"`
	IsComplete   bool                 `json:"isComplete"`
	Confidence   float64              `json:"confidence"`
	Score        *domain.ScoreResult  `json:"score"`
	LeadID       *string              `json:"leadId"`
	ExportRecord *domain.ExportRecord `json:"exportRecord"`
	IsHotLead    bool                 `json:"isHotLead"`
}

// AnalyzeRequest triggers a standalone qualification pass.
type AnalyzeRequest struct {
	LeadData            *domain.LeadData             `json:"leadData" validate:"required"`
	ConversationHistory []domain.ConversationMessage `json:"conversationHistory"`
	LeadID              string                       `json:"leadId"`
}

// AnalyzeResponse carries the qualification outcome.
type AnalyzeResponse struct {
	Success      bool                `json:"success"`
	Score        domain.ScoreResult  `json:"score"`
	ExportRecord domain.ExportRecord `json:"exportRecord"`
	LeadID       string              `json:"leadId"`
	Timestamp    string              `json:"timestamp"`
}
