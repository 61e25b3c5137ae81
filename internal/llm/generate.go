package llm

import (
	"context"
	"log/slog"

	"github.com/studypilot/backend/internal/generation"
)

// Generator adapts the gateway to the generation pipeline's text seam.
type Generator struct {
	gw    Gateway
	model string
}

func NewGenerator(gw Gateway, model string) *Generator {
	return &Generator{gw: gw, model: model}
}

func (g *Generator) GenerateText(ctx context.Context, req generation.GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	resp, err := g.gw.Chat(ctx, ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	slog.Debug("text generation call",
		"provider", resp.Provider,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"cost_usd", resp.CostUSD,
		"latency_ms", resp.LatencyMs,
	)

	return resp.Content, nil
}
