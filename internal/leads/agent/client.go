// Package agent contains the three language-model stages of the
// qualification pipeline: extraction, interpretation and temperature
// classification. Each stage owns its prompt, its response schema and its
// deterministic fallback; a model failure never escapes this package.
package agent

import (
	"context"

	"leadflow_backend/platform/ai/gemini"
)

// ModelClient is the structured-output capability the stages depend on.
// *gemini.Client satisfies it; tests substitute stubs.
type ModelClient interface {
	Generate(ctx context.Context, req gemini.Request) ([]byte, error)
}

var _ ModelClient = (*gemini.Client)(nil)
