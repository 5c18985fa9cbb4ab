package speech

import (
	"context"
	"net/http"
	"time"

	"github.com/trungnghia224/meeting-digest/internal/audio"
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
)

type implClient struct {
	cfg        config.SpeechConfig
	normalizer audio.Normalizer
	logger     logger.Logger
	http       *http.Client

	// sleep is the backoff wait, context-aware so cancellation is not
	// stranded in a retry delay. Tests replace it to record durations.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a speech pipeline Client. The normalizer is consulted before
// every submission; its failures only degrade the payload, never the call.
func New(cfg config.SpeechConfig, normalizer audio.Normalizer, log logger.Logger) Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}
	return &implClient{
		cfg:        cfg,
		normalizer: normalizer,
		logger:     log,
		http:       &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		sleep:      sleepContext,
	}
}

func (c *implClient) Configured() bool {
	return c.cfg.APIToken != "" && c.cfg.Endpoint != ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
