package pipeline

import (
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
	"github.com/trungnghia224/meeting-digest/internal/speech"
	"github.com/trungnghia224/meeting-digest/internal/summarize"
)

type implPipeline struct {
	limits     config.LimitsConfig
	speech     speech.Client
	summarizer summarize.Summarizer
	logger     logger.Logger
}

// New creates a Pipeline over the two backend clients. Both clients are
// long-lived and safe for concurrent use; per-request state lives on the
// stack of Process.
func New(limits config.LimitsConfig, sp speech.Client, sum summarize.Summarizer, log logger.Logger) Pipeline {
	if limits.MaxAudioMB == 0 {
		limits.MaxAudioMB = 50
	}
	if len(limits.Formats) == 0 {
		limits.Formats = []string{"wav", "mp3", "flac", "m4a", "ogg"}
	}
	return &implPipeline{
		limits:     limits,
		speech:     sp,
		summarizer: sum,
		logger:     log,
	}
}
