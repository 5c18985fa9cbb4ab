package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trungnghia224/meeting-digest/internal/apierr"
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
)

// candidateResponse builds the backend's wire shape around the given text.
func candidateResponse(t *testing.T, text string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": text},
					},
				},
			},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newTestSummarizer(t *testing.T, baseURL string) Summarizer {
	t.Helper()
	s, err := New(context.Background(), config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: baseURL,
	}, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSummarizeEmptyTranscriptShortCircuits(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(candidateResponse(t, "should never be requested"))
	}))
	defer ts.Close()

	s := newTestSummarizer(t, ts.URL)

	for _, transcript := range []string{"", "   ", "\n\t "} {
		got, err := s.Summarize(context.Background(), transcript, "notes")
		if err != nil {
			t.Fatalf("Summarize(%q) error = %v", transcript, err)
		}
		if got.Summary != "No content available for summary" {
			t.Errorf("Summary = %q, want placeholder", got.Summary)
		}
		if len(got.ActionItems) != 0 || len(got.KeyDecisions) != 0 {
			t.Errorf("insight = %+v, want empty lists", got)
		}
	}

	if calls != 0 {
		t.Errorf("backend calls = %d, want 0 for empty transcript", calls)
	}
}

func TestSummarizeParsesFencedJSON(t *testing.T) {
	fenced := "```json\n{\"summary\":\"Ship v2 by Friday, owned by Raj.\",\"actionItems\":[{\"item\":\"Ship v2\",\"assignee\":\"Raj\",\"priority\":\"High\",\"dueDate\":\"Friday\"}],\"keyDecisions\":[\"Ship v2 by Friday\"]}\n```"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(candidateResponse(t, fenced))
	}))
	defer ts.Close()

	s := newTestSummarizer(t, ts.URL)
	got, err := s.Summarize(context.Background(), "We agreed to ship v2 by Friday, Raj owns it.", "")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if len(got.ActionItems) == 0 {
		t.Fatal("ActionItems is empty, want at least one entry")
	}
	item := got.ActionItems[0]
	if item.Assignee != "Raj" {
		t.Errorf("Assignee = %q, want Raj", item.Assignee)
	}
	switch item.Priority {
	case "High", "Medium", "Low":
	default:
		t.Errorf("Priority = %q, want one of High/Medium/Low", item.Priority)
	}
}

func TestSummarizeMalformedOutputDegrades(t *testing.T) {
	raw := "I could not produce JSON, but the meeting was about shipping v2."

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(candidateResponse(t, raw))
	}))
	defer ts.Close()

	s := newTestSummarizer(t, ts.URL)
	got, err := s.Summarize(context.Background(), "some transcript", "")
	if err != nil {
		t.Fatalf("Summarize() must not fail on malformed model output, got %v", err)
	}

	if got.Summary != raw {
		t.Errorf("Summary = %q, want the raw model text", got.Summary)
	}
	if len(got.ActionItems) != 0 || len(got.KeyDecisions) != 0 {
		t.Errorf("insight = %+v, want empty lists", got)
	}
}

func TestSummarizeEmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	s := newTestSummarizer(t, ts.URL)
	_, err := s.Summarize(context.Background(), "some transcript", "")

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("error = %v, want *apierr.Error", err)
	}
	if apiErr.Kind != apierr.KindEmptyResponse {
		t.Errorf("Kind = %q, want empty_response", apiErr.Kind)
	}
}

func TestConfigured(t *testing.T) {
	s := newTestSummarizer(t, "http://example.com")
	if !s.Configured() {
		t.Error("Configured() = false with key present")
	}
}
