// Package leads provides the lead qualification bounded context: the
// conversational collection loop, the scoring pipeline and its endpoints.
package leads

import (
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/leads/agent"
	"leadflow_backend/internal/leads/handler"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its
// dependencies. model may be nil when the AI credential is absent; every
// stage then runs its deterministic fallback and the chat endpoint answers
// with the unavailability reply.
func NewModule(model agent.ModelClient, prompts service.PromptRecorder, val *validator.Validator, log *logger.Logger, aiEnabled bool, schedulingURL string) *Module {
	extractor := agent.NewExtractor(model, log)
	interpreter := agent.NewInterpreter(model, log)
	classifier := agent.NewClassifier(model, log)

	svc := service.New(extractor, interpreter, classifier, prompts, log, aiEnabled, schedulingURL)
	h := handler.New(svc, val, log)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the chat and analysis routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/chat", m.handler.Chat)
	ctx.V1.POST("/analyze", m.handler.Analyze)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
