package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trungnghia224/meeting-digest/internal/apierr"
	"github.com/trungnghia224/meeting-digest/internal/audio"
	"github.com/trungnghia224/meeting-digest/internal/config"
	"github.com/trungnghia224/meeting-digest/internal/logger"
)

// passthroughNormalizer hands the payload back untouched so client tests run
// without ffmpeg or real audio.
type passthroughNormalizer struct{}

func (passthroughNormalizer) Normalize(ctx context.Context, data []byte, format string) audio.Normalized {
	return audio.Normalized{Data: data, SampleRate: 16000, Fallback: audio.FallbackNone}
}

const (
	probeResponse = `{"pipelineResponse":[{"taskType":"audio-lang-detection","output":[{"langPrediction":[{"langCode":"hi-IN"}]}]}]}`
	okResponse    = `{"pipelineResponse":[{"taskType":"asr","output":[{"source":"hello world"}]},{"taskType":"translation","output":[{"target":"bonjour le monde"}]}]}`
)

// pipelineServer routes probe and asr requests separately and lets each test
// script the asr behavior.
type pipelineServer struct {
	t          *testing.T
	asrCalls   int
	probeCalls int
	lastAuth   string
	asr        func(w http.ResponseWriter, call int)
}

func (s *pipelineServer) handler(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Fatalf("decoding request: %v", err)
	}
	s.lastAuth = r.Header.Get("Authorization")

	if len(req.PipelineTasks) == 1 && req.PipelineTasks[0].TaskType == taskLangDetection {
		s.probeCalls++
		w.Write([]byte(probeResponse))
		return
	}

	s.asrCalls++
	s.asr(w, s.asrCalls)
}

func newTestClient(t *testing.T, endpoint string, maxRetries int) (*implClient, *[]time.Duration) {
	t.Helper()

	cfg := config.SpeechConfig{
		Endpoint:   endpoint,
		APIToken:   "test-token",
		MaxRetries: maxRetries,
	}
	c := New(cfg, passthroughNormalizer{}, logger.New("error")).(*implClient)

	sleeps := &[]time.Duration{}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return c, sleeps
}

func TestTranscribeAndTranslateSuccess(t *testing.T) {
	srv := &pipelineServer{t: t, asr: func(w http.ResponseWriter, call int) {
		w.Write([]byte(okResponse))
	}}
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer ts.Close()

	c, _ := newTestClient(t, ts.URL, 3)
	res, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en-US", "FR")
	if err != nil {
		t.Fatalf("TranscribeAndTranslate() error = %v", err)
	}

	if res.Transcript != "hello world" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if res.Translation != "bonjour le monde" {
		t.Errorf("Translation = %q", res.Translation)
	}
	// The probe suggested "hi" but must never override the caller's language.
	if res.DetectedLanguage != "en" {
		t.Errorf("DetectedLanguage = %q, want en", res.DetectedLanguage)
	}
	if res.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if srv.asrCalls != 1 {
		t.Errorf("asr calls = %d, want 1", srv.asrCalls)
	}
	if srv.probeCalls != 1 {
		t.Errorf("probe calls = %d, want 1", srv.probeCalls)
	}
	if srv.lastAuth != "test-token" {
		t.Errorf("Authorization = %q, want bearer token", srv.lastAuth)
	}
}

func TestTranscribeAndTranslateRetriesServerErrors(t *testing.T) {
	srv := &pipelineServer{t: t, asr: func(w http.ResponseWriter, call int) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer ts.Close()

	c, sleeps := newTestClient(t, ts.URL, 3)
	_, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en", "fr")

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("error = %v, want *apierr.Error", err)
	}
	if apiErr.Kind != apierr.KindExhaustedRetries {
		t.Errorf("Kind = %q, want exhausted_retries", apiErr.Kind)
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if srv.asrCalls != 3 {
		t.Errorf("asr calls = %d, want exactly 3", srv.asrCalls)
	}

	// Sleeps happen only between attempts: 2^0 and 2^1 seconds.
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], d)
		}
	}
}

func TestTranscribeAndTranslateRecoversMidRetry(t *testing.T) {
	srv := &pipelineServer{t: t, asr: func(w http.ResponseWriter, call int) {
		if call < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(okResponse))
	}}
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer ts.Close()

	c, _ := newTestClient(t, ts.URL, 3)
	res, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en", "fr")
	if err != nil {
		t.Fatalf("TranscribeAndTranslate() error = %v", err)
	}
	if res.Transcript != "hello world" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if srv.asrCalls != 3 {
		t.Errorf("asr calls = %d, want 3", srv.asrCalls)
	}
}

func TestTranscribeAndTranslateFatalStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind apierr.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, apierr.KindAuthentication},
		{"bad request", http.StatusBadRequest, apierr.KindBadRequest},
		{"teapot", http.StatusTeapot, apierr.KindUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &pipelineServer{t: t, asr: func(w http.ResponseWriter, call int) {
				w.WriteHeader(tt.status)
				w.Write([]byte("upstream detail"))
			}}
			ts := httptest.NewServer(http.HandlerFunc(srv.handler))
			defer ts.Close()

			c, sleeps := newTestClient(t, ts.URL, 3)
			_, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en", "fr")

			apiErr, ok := apierr.As(err)
			if !ok {
				t.Fatalf("error = %v, want *apierr.Error", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", apiErr.Kind, tt.wantKind)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if srv.asrCalls != 1 {
				t.Errorf("asr calls = %d, want exactly 1 (no retries)", srv.asrCalls)
			}
			if len(*sleeps) != 0 {
				t.Errorf("sleeps = %v, want none", *sleeps)
			}
		})
	}
}

func TestTranscribeAndTranslateIncompleteResponse(t *testing.T) {
	srv := &pipelineServer{t: t, asr: func(w http.ResponseWriter, call int) {
		w.Write([]byte(`{"pipelineResponse":[{"taskType":"asr","output":[{"source":"hello"}]}]}`))
	}}
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer ts.Close()

	c, _ := newTestClient(t, ts.URL, 3)
	_, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en", "fr")

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("error = %v, want *apierr.Error", err)
	}
	if apiErr.Kind != apierr.KindIncompleteResponse {
		t.Errorf("Kind = %q, want incomplete_response", apiErr.Kind)
	}
	if srv.asrCalls != 1 {
		t.Errorf("asr calls = %d, want 1 (incomplete responses are not retried)", srv.asrCalls)
	}
}

func TestTranscribeAndTranslateConnectionFailure(t *testing.T) {
	// Nothing listens here; every attempt fails at the transport layer.
	c, sleeps := newTestClient(t, "http://127.0.0.1:1", 2)
	_, err := c.TranscribeAndTranslate(context.Background(), []byte("audio"), "wav", "en", "fr")

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("error = %v, want *apierr.Error", err)
	}
	if apiErr.Kind != apierr.KindConnection {
		t.Errorf("Kind = %q, want connection", apiErr.Kind)
	}
	if len(*sleeps) != 1 {
		t.Errorf("sleeps = %v, want one backoff between two attempts", *sleeps)
	}
}

func TestConfigured(t *testing.T) {
	c, _ := newTestClient(t, "http://example.com", 3)
	if !c.Configured() {
		t.Error("Configured() = false with token present")
	}

	c.cfg.APIToken = ""
	if c.Configured() {
		t.Error("Configured() = true with token missing")
	}
}
