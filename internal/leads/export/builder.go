// Package export builds the spreadsheet row for a completed qualification.
package export

import (
	"fmt"
	"math"
	"strings"
	"time"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/phone"
)

// Follow-up offsets by temperature, measured from record creation.
const (
	followUpHot  = 2 * time.Hour
	followUpWarm = 24 * time.Hour
	followUpCold = 7 * 24 * time.Hour
)

// Build maps a score result plus the raw lead data to the export record.
// The record is immutable once built.
func Build(lead domain.LeadData, score domain.ScoreResult, leadID string, now time.Time) domain.ExportRecord {
	timestamp := now.UTC().Format(time.RFC3339)
	email, phoneNumber := splitContact(lead.Contact)

	record := domain.ExportRecord{
		LeadID:        leadID,
		CreatedAt:     timestamp,
		LastContactAt: timestamp,
		Name:          lead.Name,
		Company:       lead.Company,
		Email:         email,
		Phone:         phoneNumber,
		Need:          lead.Need,
		Urgency:       lead.Urgency,
		JobTitle:      lead.JobTitle,
		SalesTeamSize: lead.SalesTeamSize,
		MonthlyLeads:  lead.MonthlyLeads,
		Score:         score.Percentage,
		Status:        statusFor(score.Percentage),
		FollowUpAt:    followUpFor(score.TemperatureAnalysis, now),
		Notes:         notesFor(score),
		Temperature:   temperatureFor(score.TemperatureAnalysis),
	}

	return record
}

// splitContact decides which column the single free-text contact belongs in.
// When neither heuristic matches, both columns carry the raw value so the
// sales team never loses the reach-out channel.
func splitContact(contact string) (email, phoneNumber string) {
	trimmed := strings.TrimSpace(contact)
	switch {
	case trimmed == "":
		return "", ""
	case strings.Contains(trimmed, "@"):
		return trimmed, ""
	case phone.IsLikelyPhone(trimmed):
		return "", phone.NormalizeE164(trimmed)
	default:
		return trimmed, trimmed
	}
}

// statusFor buckets the percentage, evaluated high to low.
func statusFor(percentage int) domain.ConversationStatus {
	switch {
	case percentage >= 70:
		return domain.StatusQualifiedForScheduling
	case percentage >= 50:
		return domain.StatusNeedsMoreDetail
	case percentage >= 30:
		return domain.StatusRecycleLater
	default:
		return domain.StatusDiscard
	}
}

func followUpFor(analysis *domain.TemperatureAnalysis, now time.Time) string {
	if analysis == nil {
		return ""
	}
	var offset time.Duration
	switch analysis.Temperature {
	case domain.TemperatureHot:
		offset = followUpHot
	case domain.TemperatureWarm:
		offset = followUpWarm
	case domain.TemperatureCold:
		offset = followUpCold
	default:
		return ""
	}
	return now.UTC().Add(offset).Format(time.RFC3339)
}

func notesFor(score domain.ScoreResult) string {
	temperature := "not-analyzed"
	confidence := 0.0
	indicators := "none"
	if analysis := score.TemperatureAnalysis; analysis != nil {
		temperature = string(analysis.Temperature)
		confidence = analysis.Confidence
		if len(analysis.Indicators) > 0 {
			indicators = strings.Join(analysis.Indicators, ", ")
		}
	}

	parts := []string{
		fmt.Sprintf("Score: %d%%", score.Percentage),
		fmt.Sprintf("Temperature: %s", temperature),
		fmt.Sprintf("Confidence: %d%%", int(math.Round(confidence*100))),
		fmt.Sprintf("Indicators: %s", indicators),
	}
	return strings.Join(parts, " | ")
}

// temperatureFor keeps the column non-empty even when the classifier never
// ran; warm is the neutral default for an unanalyzed lead.
func temperatureFor(analysis *domain.TemperatureAnalysis) domain.Temperature {
	if analysis == nil {
		return domain.TemperatureWarm
	}
	return analysis.Temperature
}
