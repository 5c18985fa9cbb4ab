package summarize

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/trungnghia224/meeting-digest/internal/apierr"
)

const serviceName = "gemini"

// emptySummary is returned when there is no transcript content to analyze.
const emptySummary = "No content available for summary"

// Summarize sends one generative call and parses its semi-structured output.
// Generative calls are not retried; a formatting mismatch in the model output
// degrades to a raw-text summary instead of failing.
func (s *implSummarizer) Summarize(ctx context.Context, transcript, preMeetingNotes string) (MeetingInsight, error) {
	if strings.TrimSpace(transcript) == "" {
		return MeetingInsight{
			Summary:      emptySummary,
			ActionItems:  []ActionItem{},
			KeyDecisions: []string{},
		}, nil
	}

	prompt := buildPrompt(transcript, preMeetingNotes)

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return MeetingInsight{}, classifyGenerateError(err)
	}

	text := collectText(result)
	if text == "" {
		return MeetingInsight{}, apierr.New(serviceName, apierr.KindEmptyResponse, 500,
			"no response from the summarization service")
	}

	insight := parseInsight(text)
	s.logger.Info(ctx, "Summarization completed: %d action items, %d key decisions",
		len(insight.ActionItems), len(insight.KeyDecisions))
	return insight, nil
}

// collectText concatenates the textual parts of the first candidate.
func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}

func classifyGenerateError(err error) *apierr.Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return apierr.New(serviceName, apierr.KindAuthentication, apiErr.Code,
				"authentication with the summarization service failed")
		case 400:
			return apierr.New(serviceName, apierr.KindBadRequest, 400,
				"summarization service rejected the request")
		default:
			return apierr.New(serviceName, apierr.KindUnexpectedStatus, apiErr.Code,
				"summarization request failed with status %d", apiErr.Code)
		}
	}
	return apierr.New(serviceName, apierr.KindConnection, 502, "summarization request failed: %v", err)
}
