// Package domain contains the lead qualification domain model: the raw lead
// data collected during the conversation, its interpreted canonical form, and
// the scoring and temperature results derived from it.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeadData holds the raw, free-text attributes supplied by the user during
// the conversation. The caller round-trips it each turn; the server keeps no
// state between requests.
type LeadData struct {
	Name          string `json:"name,omitempty"`
	Company       string `json:"company,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Country       string `json:"country,omitempty"`
	Need          string `json:"need,omitempty"`
	Urgency       string `json:"urgency,omitempty"`
	JobTitle      string `json:"jobTitle,omitempty"`
	SalesTeamSize string `json:"salesTeamSize,omitempty"`
	MonthlyLeads  string `json:"monthlyLeads,omitempty"`
}

// Merge combines previously collected data with newly extracted fields.
// A newly extracted non-blank value wins; otherwise the existing value is
// kept. Null, absent and whitespace-only all count as "absent".
func Merge(base, extracted LeadData) LeadData {
	merged := base
	for _, field := range EssentialFields {
		value := strings.TrimSpace(extracted.Value(field))
		if value != "" {
			merged.setValue(field, value)
		}
	}
	return merged
}

// ConversationMessage is one turn of the chat transcript.
type ConversationMessage struct {
	IsUser bool   `json:"isUser"`
	Text   string `json:"text"`
}

// Seniority is the closed classification of a job title by decision authority.
type Seniority string

const (
	SeniorityCLevel  Seniority = "c_level"
	SeniorityManager Seniority = "manager"
	SeniorityAnalyst Seniority = "analyst"
	SeniorityEntry   Seniority = "entry_level"
	SeniorityOther   Seniority = "other"
)

// ValidSeniority reports whether the value belongs to the closed enumeration.
func ValidSeniority(s Seniority) bool {
	switch s {
	case SeniorityCLevel, SeniorityManager, SeniorityAnalyst, SeniorityEntry, SeniorityOther:
		return true
	}
	return false
}

// ProcessedLeadData is the canonical, computable form of LeadData produced by
// the interpretation stage. Numeric fields stay nil when the user never
// stated them, so scoring can report "not informed" distinctly from zero.
// Raw strings are retained for traceability.
type ProcessedLeadData struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Country string `json:"country,omitempty"`
	Need    string `json:"need,omitempty"`

	UrgencyDays   *int      `json:"urgencyDays,omitempty"`
	Seniority     Seniority `json:"seniority,omitempty"`
	SalesTeamSize *int      `json:"salesTeamSize,omitempty"`
	MonthlyLeads  *int      `json:"monthlyLeads,omitempty"`

	UrgencyRaw       string `json:"urgencyRaw,omitempty"`
	JobTitleRaw      string `json:"jobTitleRaw,omitempty"`
	SalesTeamSizeRaw string `json:"salesTeamSizeRaw,omitempty"`
	MonthlyLeadsRaw  string `json:"monthlyLeadsRaw,omitempty"`
}

// ScoreBreakdown is one scored dimension.
type ScoreBreakdown struct {
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Details  string `json:"details"`
}

// Breakdown groups the four scored dimensions.
type Breakdown struct {
	Urgency    ScoreBreakdown `json:"urgency"`
	Seniority  ScoreBreakdown `json:"seniority"`
	TeamSize   ScoreBreakdown `json:"teamSize"`
	LeadVolume ScoreBreakdown `json:"leadVolume"`
}

// ScoreResult is the full outcome of one qualification pass. Immutable once
// produced.
type ScoreResult struct {
	TotalScore          int                  `json:"totalScore"`
	MaxScore            int                  `json:"maxScore"`
	Percentage          int                  `json:"percentage"`
	Breakdown           Breakdown            `json:"breakdown"`
	ProcessedData       ProcessedLeadData    `json:"processedData"`
	TemperatureAnalysis *TemperatureAnalysis `json:"temperatureAnalysis,omitempty"`
}

// Temperature is the three-tier buying-interest classification.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

// ValidTemperature reports whether the value is one of hot, warm or cold.
func ValidTemperature(t Temperature) bool {
	return t == TemperatureHot || t == TemperatureWarm || t == TemperatureCold
}

// TemperatureAnalysis is the classifier's output for one qualification.
type TemperatureAnalysis struct {
	Temperature Temperature `json:"temperature"`
	Confidence  float64     `json:"confidence"`
	Indicators  []string    `json:"indicators"`
	Reasoning   string      `json:"reasoning"`
}

// ConversationStatus buckets a qualified lead for the sales team.
type ConversationStatus string

const (
	StatusQualifiedForScheduling ConversationStatus = "qualified_for_scheduling"
	StatusNeedsMoreDetail        ConversationStatus = "needs_more_detail"
	StatusRecycleLater           ConversationStatus = "recycle_later"
	StatusDiscard                ConversationStatus = "discard"
)

// ExportRecord is the row appended to the external spreadsheet. Created once
// at qualification completion and never updated in place.
type ExportRecord struct {
	LeadID        string             `json:"leadId"`
	CreatedAt     string             `json:"createdAt"`
	LastContactAt string             `json:"lastContactAt"`
	Name          string             `json:"name"`
	Company       string             `json:"company"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Need          string             `json:"need"`
	Urgency       string             `json:"urgency"`
	JobTitle      string             `json:"jobTitle"`
	SalesTeamSize string             `json:"salesTeamSize"`
	MonthlyLeads  string             `json:"monthlyLeads"`
	Score         int                `json:"score"`
	Status        ConversationStatus `json:"conversationStatus"`
	FollowUpAt    string             `json:"followUpAt,omitempty"`
	Notes         string             `json:"notes"`
	Temperature   Temperature        `json:"temperature"`
}

// Row returns the record's values in the spreadsheet column order. The order
// is a public contract: consumers read columns by position.
func (r ExportRecord) Row() []interface{} {
	return []interface{}{
		r.LeadID,
		r.CreatedAt,
		r.LastContactAt,
		r.Name,
		r.Company,
		r.Email,
		r.Phone,
		r.Need,
		r.Urgency,
		r.JobTitle,
		r.SalesTeamSize,
		r.MonthlyLeads,
		r.Score,
		string(r.Status),
		r.FollowUpAt,
		r.Notes,
		string(r.Temperature),
	}
}

// NewLeadID generates a lead identifier. Collision probability is treated as
// negligible and not checked.
func NewLeadID(now time.Time) string {
	return fmt.Sprintf("lead_%d_%s", now.UnixMilli(), RandomSuffix(7))
}

// RandomSuffix returns n characters of random hex for identifier suffixes.
func RandomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
