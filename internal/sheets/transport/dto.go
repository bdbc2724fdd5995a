// Package transport defines the wire contracts for the export endpoints.
package transport

import "leadflow_backend/internal/leads/domain"

// ExportRequest accepts the current record shape or the legacy flat payload
// older clients still send. At least one of ExportRecord and LeadData must
// be present.
type ExportRequest struct {
	ExportRecord *domain.ExportRecord `json:"exportRecord"`

	// Legacy flat shape.
	LeadData           *domain.LeadData    `json:"leadData"`
	ScoreData          *domain.ScoreResult `json:"scoreData"`
	LeadID             string              `json:"leadId"`
	Timestamp          string              `json:"timestamp"`
	ConversationLength int                 `json:"conversationLength"`
}

// ExportResponse reports a successful append.
type ExportResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RowNumber     int    `json:"rowNumber"`
	SpreadsheetID string `json:"spreadsheetId"`
	SheetName     string `json:"sheetName"`
	Timestamp     string `json:"timestamp"`
}

// StatusResponse reports the connectivity probe outcome.
type StatusResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	SpreadsheetTitle string `json:"spreadsheetTitle"`
	SpreadsheetID    string `json:"spreadsheetId"`
	SheetName        string `json:"sheetName"`
	Timestamp        string `json:"timestamp"`
}
