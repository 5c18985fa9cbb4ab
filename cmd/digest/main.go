package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/trungnghia224/meeting-digest/internal/audio"
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/health"
	"github.com/trungnghia224/meeting-digest/internal/logger"
	"github.com/trungnghia224/meeting-digest/internal/pipeline"
	"github.com/trungnghia224/meeting-digest/internal/report"
	"github.com/trungnghia224/meeting-digest/internal/speech"
	"github.com/trungnghia224/meeting-digest/internal/summarize"
	"github.com/trungnghia224/meeting-digest/internal/watcher"
	"github.com/trungnghia224/meeting-digest/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Credentials may come from a local .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Digest Pipeline")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Both backend clients are built once and injected; they hold only
	// immutable configuration and are safe across concurrent jobs.
	exec := executor.New()
	normalizer := audio.New(cfg.Audio, cfg.Paths.Temp, exec, log)
	speechClient := speech.New(cfg.Speech, normalizer, log)

	summarizer, err := summarize.New(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}

	hr := health.New(speechClient, summarizer).Check()
	log.Info(ctx, "Service health: %s (transcription: %s, summarization: %s)",
		hr.Status, hr.Services["transcription"], hr.Services["summarization"])

	pipe := pipeline.New(cfg.Limits, speechClient, summarizer, log)
	writer := report.New(cfg.Paths.Output, log)

	handler := func(ctx context.Context, filePath string) error {
		return processClip(ctx, cfg, pipe, writer, log, filePath)
	}

	w, err := watcher.New(cfg.Paths.Inbox, cfg.Limits.Formats, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting digest pipeline is ready!")
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Languages: %s -> %s", cfg.Languages.Source, cfg.Languages.Target)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Meeting digest pipeline stopped")
}

// processClip runs one dropped audio file through the pipeline and writes its
// digest. The clip itself is removed afterwards; nothing is persisted beyond
// the reports.
func processClip(ctx context.Context, cfg *config.Config, pipe pipeline.Pipeline, writer *report.Writer, log logger.Logger, filePath string) error {
	jobID := uuid.NewString()[:8]
	jlog := log.WithPrefix(jobID)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read clip: %w", err)
	}

	ext := filepath.Ext(filePath)
	name := strings.TrimSuffix(filepath.Base(filePath), ext)

	// An optional sidecar file carries pre-meeting notes for this clip.
	notes := ""
	if raw, err := os.ReadFile(strings.TrimSuffix(filePath, ext) + ".notes.txt"); err == nil {
		notes = string(raw)
		jlog.Info(ctx, "Loaded pre-meeting notes for %s", name)
	}

	digest, err := pipe.Process(ctx, pipeline.Request{
		Audio:           data,
		Format:          strings.TrimPrefix(ext, "."),
		SourceLanguage:  cfg.Languages.Source,
		TargetLanguage:  cfg.Languages.Target,
		PreMeetingNotes: notes,
	})
	if err != nil {
		return fmt.Errorf("process clip %s: %w", name, err)
	}

	if err := writer.Write(ctx, name, digest); err != nil {
		return fmt.Errorf("write digest for %s: %w", name, err)
	}

	if err := os.Remove(filePath); err != nil {
		jlog.Warn(ctx, "Failed to remove processed clip %s: %v", filePath, err)
	}

	jlog.Info(ctx, "Clip %s digested successfully", name)
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
