package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadflow_backend/internal/leads/agent"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/ai/gemini"
	"leadflow_backend/platform/logger"
)

const testSchedulingURL = "https://meetings.example.com/specialist"

// stageModel answers each pipeline stage separately, keyed off the response
// schema each stage requests.
type stageModel struct {
	extraction        []byte
	extractionErr     error
	interpretation    []byte
	interpretationErr error
	temperature       []byte
	temperatureErr    error
}

func (m *stageModel) Generate(_ context.Context, req gemini.Request) ([]byte, error) {
	props := req.Schema.Properties
	switch {
	case props["response"] != nil:
		return m.extraction, m.extractionErr
	case props["temperature"] != nil:
		return m.temperature, m.temperatureErr
	default:
		return m.interpretation, m.interpretationErr
	}
}

type recordedPrompt struct {
	userMessage string
	prompt      string
	response    string
	isComplete  bool
	leadID      string
}

type stubRecorder struct {
	records []recordedPrompt
}

func (r *stubRecorder) Record(userMessage, prompt, response string, _ interface{}, isComplete bool, _ float64, leadID string) {
	r.records = append(r.records, recordedPrompt{
		userMessage: userMessage,
		prompt:      prompt,
		response:    response,
		isComplete:  isComplete,
		leadID:      leadID,
	})
}

func newTestService(model agent.ModelClient, recorder PromptRecorder, aiEnabled bool) *Service {
	log := logger.New("test")
	return New(
		agent.NewExtractor(model, log),
		agent.NewInterpreter(model, log),
		agent.NewClassifier(model, log),
		recorder,
		log,
		aiEnabled,
		testSchedulingURL,
	)
}

func almostCompleteLead() domain.LeadData {
	return domain.LeadData{
		Name: "Ana", Company: "Acme", Country: "Brazil", Contact: "ana@acme.com",
		Need: "automation", JobTitle: "CEO", SalesTeamSize: "15", MonthlyLeads: "800",
	}
}

func TestHandleTurnWithoutAIReturnsApology(t *testing.T) {
	svc := newTestService(nil, nil, false)

	result := svc.HandleTurn(context.Background(), TurnRequest{
		Message:   "hello",
		Collected: domain.LeadData{Name: "Ana"},
	})

	if !strings.Contains(result.Response, "temporarily unavailable") {
		t.Fatalf("expected unavailability reply, got %q", result.Response)
	}
	if result.UpdatedData.Name != "Ana" {
		t.Fatal("expected collected data round-tripped unchanged")
	}
	if result.IsComplete {
		t.Fatal("expected incomplete")
	}
}

func TestHandleTurnCollectingMergesExtraction(t *testing.T) {
	model := &stageModel{
		extraction: []byte(`{
			"response": "Thanks Ana! What is the name of your company?",
			"extractedData": {"name": "Ana Souza"},
			"isComplete": false,
			"confidence": 0.9
		}`),
	}
	svc := newTestService(model, nil, true)

	result := svc.HandleTurn(context.Background(), TurnRequest{Message: "I'm Ana Souza"})

	if result.UpdatedData.Name != "Ana Souza" {
		t.Fatalf("expected merged name, got %q", result.UpdatedData.Name)
	}
	if result.IsComplete {
		t.Fatal("expected collection still incomplete")
	}
	if result.Score != nil || result.ExportRecord != nil || result.LeadID != "" {
		t.Fatal("no analysis artifacts expected while collecting")
	}
}

func TestHandleTurnNeverAnswersWithSilence(t *testing.T) {
	model := &stageModel{
		extraction: []byte(`{"response": "", "extractedData": {"name": "Ana"}, "isComplete": false, "confidence": 0.9}`),
	}
	svc := newTestService(model, nil, true)

	result := svc.HandleTurn(context.Background(), TurnRequest{Message: "I'm Ana"})

	if result.Response != domain.QuestionFor(domain.FieldCompany) {
		t.Fatalf("expected next-field question, got %q", result.Response)
	}
}

func TestHandleTurnCompletionHotLead(t *testing.T) {
	model := &stageModel{
		extraction: []byte(`{
			"response": "Thanks! That is everything.",
			"extractedData": {"urgency": "it is urgent"},
			"isComplete": true,
			"confidence": 0.95
		}`),
		interpretation: []byte(`{
			"urgencyDays": 7, "seniority": "c_level",
			"salesTeamSize": 15, "monthlyLeads": 800
		}`),
		temperature: []byte(`{
			"temperature": "hot", "confidence": 0.9,
			"indicators": ["clear urgency"], "reasoning": "r"
		}`),
	}
	recorder := &stubRecorder{}
	svc := newTestService(model, recorder, true)

	result := svc.HandleTurn(context.Background(), TurnRequest{
		Message:   "it is urgent",
		Collected: almostCompleteLead(),
	})

	if !result.IsComplete {
		t.Fatal("expected completion")
	}
	if !result.IsHotLead {
		t.Fatal("expected hot lead routing")
	}
	if !strings.Contains(result.Response, testSchedulingURL) {
		t.Fatalf("expected scheduling link in reply, got %q", result.Response)
	}
	if result.LeadID == "" || !strings.HasPrefix(result.LeadID, "lead_") {
		t.Fatalf("expected generated lead id, got %q", result.LeadID)
	}
	if result.Score == nil || result.Score.TotalScore != 90 {
		t.Fatalf("expected score 90, got %+v", result.Score)
	}
	if result.ExportRecord == nil || result.ExportRecord.LeadID != result.LeadID {
		t.Fatalf("expected export record for the same lead, got %+v", result.ExportRecord)
	}
	if result.ExportRecord.Status != domain.StatusQualifiedForScheduling {
		t.Fatalf("expected qualified status, got %s", result.ExportRecord.Status)
	}
	if len(recorder.records) != 1 || !recorder.records[0].isComplete {
		t.Fatalf("expected one complete prompt record, got %+v", recorder.records)
	}
}

func TestHandleTurnCompletionWarmLeadGetsGenericReply(t *testing.T) {
	model := &stageModel{
		extraction: []byte(`{
			"response": "Thanks!",
			"extractedData": {"urgency": "2 months"},
			"isComplete": true,
			"confidence": 0.95
		}`),
		interpretation: []byte(`{"urgencyDays": 60, "seniority": "manager", "salesTeamSize": 5, "monthlyLeads": 200}`),
		temperature:    []byte(`{"temperature": "warm", "confidence": 0.6, "indicators": ["exploring"], "reasoning": "r"}`),
	}
	svc := newTestService(model, nil, true)

	result := svc.HandleTurn(context.Background(), TurnRequest{
		Message:   "around 2 months",
		Collected: almostCompleteLead(),
	})

	if result.IsHotLead {
		t.Fatal("warm lead must not be routed as hot")
	}
	if strings.Contains(result.Response, testSchedulingURL) {
		t.Fatal("warm lead reply must not carry the scheduling link")
	}
	if !strings.Contains(result.Response, "team will be in touch") {
		t.Fatalf("expected generic handoff reply, got %q", result.Response)
	}
}

// Full outage: every stage fails, yet the turn still resolves with a usable
// reply and registry-derived completeness.
func TestHandleTurnSurvivesTotalModelOutage(t *testing.T) {
	outage := errors.New("model down")
	model := &stageModel{extractionErr: outage, interpretationErr: outage, temperatureErr: outage}
	svc := newTestService(model, nil, true)

	collected := almostCompleteLead()
	collected.Urgency = "2 months"
	// Neither an authority title nor urgency keywords, so the temperature
	// fallback stays warm.
	collected.JobTitle = "Analyst"
	result := svc.HandleTurn(context.Background(), TurnRequest{
		Message:   "anything",
		Collected: collected,
	})

	if result.Response == "" {
		t.Fatal("expected a non-empty reply during outage")
	}
	if !result.IsComplete {
		t.Fatal("expected completeness computed from the registry")
	}
	if result.LeadID == "" {
		t.Fatal("expected a lead id even during outage")
	}
	if result.Score == nil {
		t.Fatal("expected fallback-derived score")
	}
	if result.IsHotLead {
		t.Fatal("non-urgent outage lead should fall back to warm")
	}
}

func TestAnalyzeKeepsCallerLeadID(t *testing.T) {
	model := &stageModel{
		interpretation: []byte(`{"urgencyDays": 7, "seniority": "c_level", "salesTeamSize": 15, "monthlyLeads": 800}`),
		temperature:    []byte(`{"temperature": "hot", "confidence": 0.9, "indicators": ["x"], "reasoning": "r"}`),
	}
	svc := newTestService(model, nil, true)

	result, err := svc.Analyze(context.Background(), almostCompleteLead(), nil, "lead_custom_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.LeadID != "lead_custom_1" {
		t.Fatalf("expected caller lead id kept, got %q", result.LeadID)
	}
	if result.ExportRecord.LeadID != "lead_custom_1" {
		t.Fatalf("expected record under caller lead id, got %q", result.ExportRecord.LeadID)
	}
	if result.Score.TemperatureAnalysis == nil || result.Score.TemperatureAnalysis.Temperature != domain.TemperatureHot {
		t.Fatalf("expected hot analysis attached, got %+v", result.Score.TemperatureAnalysis)
	}
}

func TestAnalyzeGeneratesLeadIDWhenAbsent(t *testing.T) {
	model := &stageModel{
		interpretation: []byte(`{"seniority": "other"}`),
		temperature:    []byte(`{"temperature": "cold", "confidence": 0.3, "indicators": ["x"], "reasoning": "r"}`),
	}
	svc := newTestService(model, nil, true)

	result, err := svc.Analyze(context.Background(), domain.LeadData{}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result.LeadID, "lead_") {
		t.Fatalf("expected generated lead id, got %q", result.LeadID)
	}
}
