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

// fallbackConfidence is the fixed conservative confidence reported when the
// model could not be consulted.
const fallbackConfidence = 0.6

const fallbackProbe = "Could you tell me more about your need?"

// ExtractionResult is the outcome of one extraction turn. Prompt carries the
// exact text sent to the model, for observability logging.
type ExtractionResult struct {
	Reply      string
	Extracted  domain.LeadData
	IsComplete bool
	Confidence float64
	Prompt     string
}

// Extractor pulls structured fields out of the latest user message and
// phrases the next conversational reply.
type Extractor struct {
	model ModelClient
	log   *logger.Logger
}

// NewExtractor creates the extraction stage. A nil model is allowed and
// routes every call through the deterministic fallback.
func NewExtractor(model ModelClient, log *logger.Logger) *Extractor {
	return &Extractor{model: model, log: log}
}

type extractionPayload struct {
	Response      string          `json:"response"`
	ExtractedData domain.LeadData `json:"extractedData"`
	IsComplete    bool            `json:"isComplete"`
	Confidence    float64         `json:"confidence"`
}

// Extract runs the extraction stage for one turn. Fields are extracted only
// from the current message; the history is context for phrasing the reply,
// never a source of values. Any model failure falls back to asking the
// question for the first missing field in the pre-merge data.
func (e *Extractor) Extract(ctx context.Context, message string, collected domain.LeadData, history []domain.ConversationMessage) ExtractionResult {
	prompt := fmt.Sprintf(extractionPromptTemplate,
		formatCollectedData(collected),
		formatHistory(history),
		message,
	)

	payload, err := e.invoke(ctx, prompt)
	if err != nil {
		e.log.AIStageFallback("extraction", err)
		return fallbackExtraction(collected, prompt)
	}

	return ExtractionResult{
		Reply:      payload.Response,
		Extracted:  payload.ExtractedData,
		IsComplete: payload.IsComplete,
		Confidence: payload.Confidence,
		Prompt:     prompt,
	}
}

func (e *Extractor) invoke(ctx context.Context, prompt string) (extractionPayload, error) {
	var payload extractionPayload

	if e.model == nil {
		return payload, errors.New("model client not configured")
	}

	raw, err := e.model.Generate(ctx, gemini.Request{
		System:      extractionSystem,
		Prompt:      prompt,
		Schema:      extractionSchema(),
		Temperature: 0.3,
	})
	if err != nil {
		return payload, err
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode extraction response: %w", err)
	}
	return payload, nil
}

func fallbackExtraction(collected domain.LeadData, prompt string) ExtractionResult {
	reply := fallbackProbe
	if next, missing := domain.NextMissingField(collected); missing {
		reply = domain.QuestionFor(next)
	}

	return ExtractionResult{
		Reply:      reply,
		IsComplete: domain.IsComplete(collected),
		Confidence: fallbackConfidence,
		Prompt:     prompt,
	}
}
