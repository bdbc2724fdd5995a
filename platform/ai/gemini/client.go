// Package gemini provides a structured-output client for the Gemini API.
// This is the language-model boundary: callers describe the JSON shape they
// need and get back raw JSON bytes that already conform to it. Everything
// behind this boundary (provider, transport, retries) is replaceable without
// touching the qualification pipeline.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("gemini: api key not configured")

// Config holds the Gemini client settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Request describes one structured-output generation call.
type Request struct {
	// System is the system instruction, may be empty.
	System string
	// Prompt is the user-turn prompt text.
	Prompt string
	// Schema constrains the response to a JSON shape. Required.
	Schema *genai.Schema
	// Temperature controls sampling. The qualification stages use low
	// values for consistency.
	Temperature float32
}

// Client wraps the genai SDK with JSON-schema response enforcement and a
// per-call timeout.
type Client struct {
	cfg    Config
	client *genai.Client
}

// New creates a Gemini client. It returns ErrNotConfigured when the API key
// is empty so callers can degrade to their deterministic fallbacks instead
// of failing at startup.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{cfg: cfg, client: client}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate runs one structured-output call and returns the raw JSON bytes.
// A timeout is enforced per call; timeouts surface as ordinary errors and
// are not distinguished from other failures.
func (c *Client) Generate(ctx context.Context, req Request) ([]byte, error) {
	if req.Schema == nil {
		return nil, errors.New("gemini: request schema is required")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(callCtx, c.cfg.Model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("gemini: empty response")
	}

	return []byte(text), nil
}
