// Package gemini implements llm.Provider on top of the official Gemini SDK.
package gemini

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/HerbHall/fleetadvisor/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Config carries the Gemini connection settings.
type Config struct {
	APIKey string
	Model  string
}

// Compile-time interface guard.
var _ llm.Provider = (*Provider)(nil)

// Provider calls the Gemini API through google.golang.org/genai.
type Provider struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New builds a Provider. A missing API key is reported as an
// authentication ProviderError before any network call.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewProviderError(llm.ErrCodeAuthentication, "Gemini API key is not set", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, mapError(err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{client: client, model: model, logger: logger}, nil
}

// Generate performs one text generation call.
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Response, error) {
	o := llm.ApplyOptions(opts...)

	genCfg := &genai.GenerateContentConfig{}
	if o.Temperature != nil {
		genCfg.Temperature = genai.Ptr(float32(*o.Temperature))
	}
	if o.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(o.MaxTokens)
	}

	p.logger.Debug("calling gemini", zap.String("model", p.model), zap.Int("prompt_bytes", len(prompt)))

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, mapError(err)
	}

	return &llm.Response{Content: resp.Text(), Model: p.model}, nil
}
