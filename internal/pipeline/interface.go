package pipeline

import (
	"context"
	"time"

	"github.com/trungnghia224/meeting-digest/internal/summarize"
)

// Request is one audio clip to digest. Audio holds the raw payload; Format is
// the declared container format tag (wav, mp3, ...).
type Request struct {
	Audio           []byte
	Format          string
	SourceLanguage  string
	TargetLanguage  string
	PreMeetingNotes string
}

// Digest is the aggregate result returned to the caller.
type Digest struct {
	Transcript     string                   `json:"transcript"`
	Translation    string                   `json:"translation"`
	SourceLanguage string                   `json:"sourceLanguage"`
	TargetLanguage string                   `json:"targetLanguage"`
	Insight        summarize.MeetingInsight `json:"insight"`
	ProcessedAt    time.Time                `json:"processedAt"`
	Duration       time.Duration            `json:"duration"`
}

// Pipeline runs the full clip-to-digest flow: validate, transcribe+translate,
// summarize.
type Pipeline interface {
	Process(ctx context.Context, req Request) (*Digest, error)
}
