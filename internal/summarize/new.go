package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
)

type implSummarizer struct {
	client     *genai.Client
	model      string
	configured bool
	logger     logger.Logger
}

// New creates a Summarizer backed by the Gemini API. The client is built once
// and reused across requests; cfg.BaseURL lets tests point it at a double.
func New(ctx context.Context, cfg config.GeminiConfig, log logger.Logger) (Summarizer, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &implSummarizer{
		client:     client,
		model:      cfg.Model,
		configured: cfg.APIKey != "",
		logger:     log,
	}, nil
}

func (s *implSummarizer) Configured() bool {
	return s.configured
}
