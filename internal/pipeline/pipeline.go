package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/trungnghia224/meeting-digest/internal/speech"
)

// noTranscriptContent feeds the summarizer when audio processing yielded no
// usable text and no notes were supplied.
const noTranscriptContent = "Audio processing completed but no transcript was generated. " +
	"This could be due to audio quality, silence, or language detection issues."

// Process runs the steps sequentially; each depends on the previous output,
// so there is no internal parallelism.
func (p *implPipeline) Process(ctx context.Context, req Request) (*Digest, error) {
	start := time.Now()

	if err := p.validate(&req); err != nil {
		return nil, err
	}

	src := req.SourceLanguage
	if src == "" {
		src = "hi"
	}
	tgt := req.TargetLanguage
	if tgt == "" {
		tgt = "en"
	}

	p.logger.Info(ctx, "Processing clip: %d bytes, %s, %s -> %s", len(req.Audio), req.Format, src, tgt)

	result, err := p.speech.TranscribeAndTranslate(ctx, req.Audio, req.Format, src, tgt)
	if err != nil {
		return nil, err
	}

	transcript := result.Transcript
	translation := result.Translation
	if translation == "" && transcript != "" {
		// Same-language request: the transcript stands in for the translation.
		translation = transcript
	}

	content := translation
	if content == "" {
		content = transcript
	}
	if strings.TrimSpace(content) == "" {
		p.logger.Warn(ctx, "No transcript or translation extracted, summarizing fallback content")
		if notes := strings.TrimSpace(req.PreMeetingNotes); notes != "" {
			content = "Pre-meeting notes: " + notes
		} else {
			content = noTranscriptContent
		}
	}

	insight, err := p.summarizer.Summarize(ctx, content, req.PreMeetingNotes)
	if err != nil {
		return nil, err
	}

	digest := &Digest{
		Transcript:     transcript,
		Translation:    translation,
		SourceLanguage: result.DetectedLanguage,
		TargetLanguage: speech.NormalizeLanguage(tgt),
		Insight:        insight,
		ProcessedAt:    time.Now(),
		Duration:       time.Since(start),
	}

	p.logger.Info(ctx, "Digest completed in %s: %d action items, %d key decisions",
		digest.Duration, len(insight.ActionItems), len(insight.KeyDecisions))

	return digest, nil
}
