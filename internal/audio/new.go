package audio

import (
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
	"github.com/trungnghia224/meeting-digest/pkg/executor"
)

type implNormalizer struct {
	cfg      config.AudioConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Normalizer. tempDir may be empty, in which case the system
// temp directory is used for scratch files.
func New(cfg config.AudioConfig, tempDir string, exec executor.Executor, log logger.Logger) Normalizer {
	if cfg.TargetSampleRate == 0 {
		cfg.TargetSampleRate = 16000
	}
	if cfg.ToleranceHz == 0 {
		cfg.ToleranceHz = 1000
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	return &implNormalizer{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
