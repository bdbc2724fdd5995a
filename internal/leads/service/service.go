// Package service contains the conversation orchestrator: it drives
// turn-taking, fires the qualification pipeline when collection completes,
// and composes the outward reply.
package service

import (
	"context"
	"fmt"
	"time"

	"leadflow_backend/internal/leads/agent"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/export"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const unavailableReply = "Sorry, the service is temporarily unavailable. Please try again in a few minutes."

const completionReply = "Perfect! We have collected all the information we need. Our team will be in touch shortly to discuss how we can help your company."

const hotLeadReplyTemplate = "Perfect! We have collected all the information we need. Based on your profile, you are a high-priority lead for our team!\n\n" +
	"To speed things up, you can book a meeting directly with one of our specialists through this link:\n\n" +
	"%s\n\n" +
	"Our team will be in touch shortly to discuss how we can help your company accelerate revenue generation."

// PromptRecorder receives a best-effort observability record of each
// extraction turn. Implementations must never fail the caller.
type PromptRecorder interface {
	Record(userMessage, prompt, response string, extractedData interface{}, isComplete bool, confidence float64, leadID string)
}

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	Message   string
	Collected domain.LeadData
	History   []domain.ConversationMessage
}

// TurnResult is the composed outcome of one chat turn.
type TurnResult struct {
	Response     string
	UpdatedData  domain.LeadData
	IsComplete   bool
	Confidence   float64
	Score        *domain.ScoreResult
	LeadID       string
	ExportRecord *domain.ExportRecord
	IsHotLead    bool
}

// AnalysisResult is the outcome of a full qualification pass.
type AnalysisResult struct {
	Score        domain.ScoreResult
	ExportRecord domain.ExportRecord
	LeadID       string
}

// Service orchestrates the qualification pipeline.
type Service struct {
	extractor   *agent.Extractor
	interpreter *agent.Interpreter
	classifier  *agent.Classifier
	prompts     PromptRecorder
	log         *logger.Logger

	aiEnabled     bool
	schedulingURL string
	now           func() time.Time
}

// New creates the orchestrator. aiEnabled gates the chat endpoint's apology
// path: when false no model call is attempted and the caller is asked to
// retry later. prompts may be nil.
func New(
	extractor *agent.Extractor,
	interpreter *agent.Interpreter,
	classifier *agent.Classifier,
	prompts PromptRecorder,
	log *logger.Logger,
	aiEnabled bool,
	schedulingURL string,
) *Service {
	return &Service{
		extractor:     extractor,
		interpreter:   interpreter,
		classifier:    classifier,
		prompts:       prompts,
		log:           log,
		aiEnabled:     aiEnabled,
		schedulingURL: schedulingURL,
		now:           time.Now,
	}
}

// HandleTurn processes one chat turn. The conversation always continues:
// every failure downstream of request validation resolves to a usable reply.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) TurnResult {
	if !s.aiEnabled {
		return TurnResult{
			Response:    unavailableReply,
			UpdatedData: req.Collected,
		}
	}

	extraction := s.extractor.Extract(ctx, req.Message, req.Collected, req.History)
	merged := domain.Merge(req.Collected, extraction.Extracted)
	isComplete := domain.IsComplete(merged)

	result := TurnResult{
		Response:    extraction.Reply,
		UpdatedData: merged,
		IsComplete:  isComplete,
		Confidence:  extraction.Confidence,
	}

	if isComplete {
		s.completeTurn(ctx, &result, merged, req.History)
	} else if result.Response == "" {
		// The extraction stage may come back with an empty reply; never
		// answer with silence.
		if next, missing := domain.NextMissingField(merged); missing {
			result.Response = domain.QuestionFor(next)
		}
	}

	s.recordPrompt(req.Message, extraction, result)

	return result
}

// completeTurn runs the one-shot COLLECTING -> COMPLETE transition: full
// analysis, lead id assignment and the closing reply.
func (s *Service) completeTurn(ctx context.Context, result *TurnResult, lead domain.LeadData, history []domain.ConversationMessage) {
	analysis, err := s.Analyze(ctx, lead, history, "")
	if err != nil {
		// Qualification still completes; without a temperature analysis
		// there is no hot-lead routing.
		s.log.Error("lead analysis failed", "error", err)
		result.LeadID = domain.NewLeadID(s.now())
		result.Response = completionReply
		return
	}

	result.LeadID = analysis.LeadID
	result.Score = &analysis.Score
	record := analysis.ExportRecord
	result.ExportRecord = &record

	if temp := analysis.Score.TemperatureAnalysis; temp != nil && temp.Temperature == domain.TemperatureHot {
		result.IsHotLead = true
		result.Response = s.hotLeadReply()
	} else {
		result.Response = completionReply
	}
}

// Analyze runs the full qualification pass: interpretation feeding the
// scoring engine on one branch, temperature classification on the other.
// The two branches share no inputs beyond the raw lead data and run
// concurrently; the reply is composed only after both resolve.
func (s *Service) Analyze(ctx context.Context, lead domain.LeadData, history []domain.ConversationMessage, leadID string) (AnalysisResult, error) {
	var (
		score       domain.ScoreResult
		temperature domain.TemperatureAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		processed := s.interpreter.Interpret(gctx, lead)
		score = scoring.Score(processed)
		return gctx.Err()
	})
	g.Go(func() error {
		temperature = s.classifier.Classify(gctx, lead, history)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return AnalysisResult{}, err
	}

	score.TemperatureAnalysis = &temperature

	now := s.now()
	if leadID == "" {
		leadID = domain.NewLeadID(now)
	}

	return AnalysisResult{
		Score:        score,
		ExportRecord: export.Build(lead, score, leadID, now),
		LeadID:       leadID,
	}, nil
}

// BuildExportRecord exposes the record builder for the export endpoint's
// legacy flat payload.
func (s *Service) BuildExportRecord(lead domain.LeadData, score domain.ScoreResult, leadID string) domain.ExportRecord {
	now := s.now()
	if leadID == "" {
		leadID = domain.NewLeadID(now)
	}
	return export.Build(lead, score, leadID, now)
}

func (s *Service) hotLeadReply() string {
	return fmt.Sprintf(hotLeadReplyTemplate, s.schedulingURL)
}

func (s *Service) recordPrompt(message string, extraction agent.ExtractionResult, result TurnResult) {
	if s.prompts == nil {
		return
	}
	// Observability only; a recorder panic must not fail the turn.
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("prompt recording failed", "panic", r)
		}
	}()
	s.prompts.Record(message, extraction.Prompt, result.Response, extraction.Extracted, result.IsComplete, result.Confidence, result.LeadID)
}
