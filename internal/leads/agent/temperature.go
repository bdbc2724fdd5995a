package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/ai/gemini"
	"leadflow_backend/platform/logger"
)

var (
	authorityKeywords = []string{"ceo", "cto", "director", "vp"}
	urgencyKeywords   = []string{"urgent", "asap", "immediate"}
)

// Classifier rates a lead's buying interest as hot, warm or cold.
type Classifier struct {
	model ModelClient
	log   *logger.Logger
}

// NewClassifier creates the temperature stage. A nil model is allowed and
// routes every call through the deterministic fallback.
func NewClassifier(model ModelClient, log *logger.Logger) *Classifier {
	return &Classifier{model: model, log: log}
}

// Classify runs the temperature analysis. On any model failure it falls back
// to a rule-based default: warm at 0.5, upgraded to hot at 0.7 for a
// high-authority title, then to hot at 0.8 for urgency keywords. The two
// upgrade checks run in sequence and the urgency check applies regardless of
// whether the title check already fired.
func (c *Classifier) Classify(ctx context.Context, lead domain.LeadData, history []domain.ConversationMessage) domain.TemperatureAnalysis {
	analysis, err := c.invoke(ctx, lead, history)
	if err != nil {
		c.log.AIStageFallback("temperature", err)
		return fallbackTemperature(lead)
	}

	if !domain.ValidTemperature(analysis.Temperature) {
		c.log.AIStageFallback("temperature", fmt.Errorf("invalid temperature %q", analysis.Temperature))
		return fallbackTemperature(lead)
	}
	if analysis.Confidence < 0 || analysis.Confidence > 1 {
		c.log.AIStageFallback("temperature", fmt.Errorf("confidence %v out of range", analysis.Confidence))
		return fallbackTemperature(lead)
	}
	if len(analysis.Indicators) == 0 {
		analysis.Indicators = []string{"no specific indicators returned"}
	}

	return analysis
}

func (c *Classifier) invoke(ctx context.Context, lead domain.LeadData, history []domain.ConversationMessage) (domain.TemperatureAnalysis, error) {
	var analysis domain.TemperatureAnalysis

	if c.model == nil {
		return analysis, errors.New("model client not configured")
	}

	prompt := fmt.Sprintf(temperaturePromptTemplate, formatLeadData(lead), formatHistory(history))
	raw, err := c.model.Generate(ctx, gemini.Request{
		System:      temperatureSystem,
		Prompt:      prompt,
		Schema:      temperatureSchema(),
		Temperature: 0.1,
	})
	if err != nil {
		return analysis, err
	}

	if err := json.Unmarshal(raw, &analysis); err != nil {
		return analysis, fmt.Errorf("decode temperature response: %w", err)
	}
	return analysis, nil
}

func fallbackTemperature(lead domain.LeadData) domain.TemperatureAnalysis {
	analysis := domain.TemperatureAnalysis{
		Temperature: domain.TemperatureWarm,
		Confidence:  0.5,
		Indicators:  []string{"automatic analysis - insufficient data"},
		Reasoning:   "Rule-based classification from the available data after a model failure",
	}

	if containsAny(lead.JobTitle, authorityKeywords) {
		analysis.Temperature = domain.TemperatureHot
		analysis.Confidence = 0.7
		analysis.Indicators = []string{"high-authority job title"}
	}

	if containsAny(lead.Urgency, urgencyKeywords) {
		analysis.Temperature = domain.TemperatureHot
		analysis.Confidence = 0.8
		analysis.Indicators = append(analysis.Indicators, "high urgency")
	}

	return analysis
}

func containsAny(value string, keywords []string) bool {
	lowered := strings.ToLower(value)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
