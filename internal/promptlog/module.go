// Package promptlog provides the in-memory prompt observability bounded
// context. The store instance is injected into the leads module so chat
// turns land here without an HTTP round trip.
package promptlog

import (
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/promptlog/handler"
	"leadflow_backend/internal/promptlog/store"
)

// Module is the prompt log bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	store   *store.Store
}

// NewModule creates the prompt log module with a bounded store.
func NewModule(capacity int) *Module {
	s := store.New(capacity)
	return &Module{
		handler: handler.New(s),
		store:   s,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "promptlog"
}

// Store returns the underlying store for injection into other modules.
func (m *Module) Store() *store.Store {
	return m.store
}

// RegisterRoutes mounts the prompt log routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/prompts", m.handler.List)
	ctx.V1.POST("/prompts", m.handler.Append)
	ctx.V1.DELETE("/prompts", m.handler.Clear)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
