package speech

import "context"

// StatusSuccess is the only status a returned Result ever carries; failures
// are reported through errors instead of partially filled results.
const StatusSuccess = "success"

// Result is the combined output of one ASR+translation pipeline call.
// DetectedLanguage is the normalized caller-supplied source language, not the
// advisory probe result.
type Result struct {
	Transcript       string `json:"transcript"`
	Translation      string `json:"translation"`
	DetectedLanguage string `json:"detectedLanguage"`
	Status           string `json:"status"`
}

// Client submits audio to the remote speech pipeline for chained
// transcription and translation.
type Client interface {
	TranscribeAndTranslate(ctx context.Context, audioData []byte, format, sourceLang, targetLang string) (*Result, error)

	// Configured reports whether the client holds credentials. It performs
	// no network call.
	Configured() bool
}
