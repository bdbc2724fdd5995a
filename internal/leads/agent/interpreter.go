package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/ai/gemini"
	"leadflow_backend/platform/logger"
)

// fallbackUrgencyDays treats an uninterpretable urgency as not-urgent.
const fallbackUrgencyDays = 365

// Interpreter normalizes raw collected values into the canonical computable
// form the scoring engine consumes.
type Interpreter struct {
	model ModelClient
	log   *logger.Logger
}

// NewInterpreter creates the interpretation stage. A nil model is allowed
// and routes every call through the deterministic fallback.
func NewInterpreter(model ModelClient, log *logger.Logger) *Interpreter {
	return &Interpreter{model: model, log: log}
}

type interpretationPayload struct {
	UrgencyDays      *int   `json:"urgencyDays"`
	Seniority        string `json:"seniority"`
	SalesTeamSize    *int   `json:"salesTeamSize"`
	MonthlyLeads     *int   `json:"monthlyLeads"`
	UrgencyRaw       string `json:"urgencyRaw"`
	JobTitleRaw      string `json:"jobTitleRaw"`
	SalesTeamSizeRaw string `json:"salesTeamSizeRaw"`
	MonthlyLeadsRaw  string `json:"monthlyLeadsRaw"`
}

// Interpret converts raw lead data to ProcessedLeadData. On any model
// failure the fallback fills not-urgent/other/zero values with the raw
// strings carried through unchanged.
func (i *Interpreter) Interpret(ctx context.Context, lead domain.LeadData) domain.ProcessedLeadData {
	payload, err := i.invoke(ctx, lead)
	if err != nil {
		i.log.AIStageFallback("interpretation", err)
		return fallbackInterpretation(lead)
	}

	processed := domain.ProcessedLeadData{
		Name:             lead.Name,
		Company:          lead.Company,
		Country:          lead.Country,
		Need:             lead.Need,
		UrgencyDays:      nonNegative(payload.UrgencyDays),
		Seniority:        domain.Seniority(payload.Seniority),
		SalesTeamSize:    nonNegative(payload.SalesTeamSize),
		MonthlyLeads:     nonNegative(payload.MonthlyLeads),
		UrgencyRaw:       firstNonEmpty(payload.UrgencyRaw, lead.Urgency),
		JobTitleRaw:      firstNonEmpty(payload.JobTitleRaw, lead.JobTitle),
		SalesTeamSizeRaw: firstNonEmpty(payload.SalesTeamSizeRaw, lead.SalesTeamSize),
		MonthlyLeadsRaw:  firstNonEmpty(payload.MonthlyLeadsRaw, lead.MonthlyLeads),
	}

	// Schema validation at the model boundary: the pipeline downstream
	// assumes the closed enumeration holds.
	if !domain.ValidSeniority(processed.Seniority) {
		processed.Seniority = domain.SeniorityOther
	}

	return processed
}

func (i *Interpreter) invoke(ctx context.Context, lead domain.LeadData) (interpretationPayload, error) {
	var payload interpretationPayload

	if i.model == nil {
		return payload, errors.New("model client not configured")
	}

	prompt := fmt.Sprintf(interpretationPromptTemplate, formatLeadData(lead))
	raw, err := i.model.Generate(ctx, gemini.Request{
		System:      interpretationSystem,
		Prompt:      prompt,
		Schema:      interpretationSchema(),
		Temperature: 0.1,
	})
	if err != nil {
		return payload, err
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode interpretation response: %w", err)
	}
	return payload, nil
}

func fallbackInterpretation(lead domain.LeadData) domain.ProcessedLeadData {
	urgency := fallbackUrgencyDays
	teamSize := 0
	leadVolume := 0
	return domain.ProcessedLeadData{
		Name:             lead.Name,
		Company:          lead.Company,
		Country:          lead.Country,
		Need:             lead.Need,
		UrgencyDays:      &urgency,
		Seniority:        domain.SeniorityOther,
		SalesTeamSize:    &teamSize,
		MonthlyLeads:     &leadVolume,
		UrgencyRaw:       lead.Urgency,
		JobTitleRaw:      lead.JobTitle,
		SalesTeamSizeRaw: lead.SalesTeamSize,
		MonthlyLeadsRaw:  lead.MonthlyLeads,
	}
}

func nonNegative(value *int) *int {
	if value == nil || *value < 0 {
		return nil
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
