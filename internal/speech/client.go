package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/trungnghia224/meeting-digest/internal/apierr"
	"github.com/trungnghia224/meeting-digest/internal/audio"
)

const serviceName = "bhashini"

// transientError marks a single failed attempt that may be retried. It never
// leaves this package; terminal classification happens once retries are
// exhausted.
type transientError struct {
	kind   apierr.Kind
	status int
	msg    string
}

func (e *transientError) Error() string {
	return fmt.Sprintf("transient %s: %s", e.kind, e.msg)
}

// TranscribeAndTranslate submits a single pipeline request chaining ASR and
// translation, retrying transient failures with exponential backoff.
func (c *implClient) TranscribeAndTranslate(ctx context.Context, audioData []byte, format, sourceLang, targetLang string) (*Result, error) {
	src := NormalizeLanguage(sourceLang)
	tgt := NormalizeLanguage(targetLang)

	c.logger.Info(ctx, "Processing audio: %s -> %s, format: %s", src, tgt, format)

	norm := c.normalizer.Normalize(ctx, audioData, format)
	if norm.Fallback == audio.FallbackRaw {
		c.logger.Warn(ctx, "Audio normalization fell back to the original payload")
	}
	audioB64 := base64.StdEncoding.EncodeToString(norm.Data)

	// Advisory probe only: the result is compared against the caller-supplied
	// language but never overrides it, and its errors are swallowed.
	if detected, err := c.detectLanguage(ctx, audioB64); err != nil {
		c.logger.Warn(ctx, "Language detection failed: %v", err)
	} else if detected != "" && detected != src {
		c.logger.Info(ctx, "Language probe suggests %q, keeping caller-supplied %q", detected, src)
	}

	payload, err := json.Marshal(c.buildRequest(audioB64, src, tgt))
	if err != nil {
		return nil, apierr.New(serviceName, apierr.KindInternal, 500, "encode pipeline request: %v", err)
	}

	var lastTransient *transientError
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		result, err := c.submit(ctx, payload)
		if err == nil {
			result.DetectedLanguage = src
			result.Status = StatusSuccess
			return result, nil
		}

		var te *transientError
		if !errors.As(err, &te) {
			return nil, err
		}
		lastTransient = te

		if attempt == c.cfg.MaxRetries-1 {
			break
		}

		delay := time.Duration(1<<attempt) * time.Second
		c.logger.Warn(ctx, "Attempt %d/%d failed (%s), retrying in %s", attempt+1, c.cfg.MaxRetries, te.msg, delay)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, apierr.New(serviceName, apierr.KindConnection, 502, "cancelled during backoff: %v", err)
		}
	}

	switch lastTransient.kind {
	case apierr.KindTimeout:
		return nil, apierr.New(serviceName, apierr.KindTimeout, 504,
			"transcription service timed out after %d attempts", c.cfg.MaxRetries)
	case apierr.KindConnection:
		return nil, apierr.New(serviceName, apierr.KindConnection, 502,
			"could not reach transcription service after %d attempts", c.cfg.MaxRetries)
	default:
		return nil, apierr.New(serviceName, apierr.KindExhaustedRetries, lastTransient.status,
			"transcription service kept failing after %d attempts", c.cfg.MaxRetries)
	}
}

func (c *implClient) buildRequest(audioB64, src, tgt string) pipelineRequest {
	return pipelineRequest{
		PipelineTasks: []pipelineTask{
			{
				TaskType: taskASR,
				Config: taskConfig{
					Language:       &languagePair{SourceLanguage: src},
					ServiceID:      c.cfg.ASRServiceID,
					AudioFormat:    "wav",
					SamplingRate:   16000,
					PostProcessors: []string{"itn"},
				},
			},
			{
				TaskType: taskTranslation,
				Config: taskConfig{
					Language:  &languagePair{SourceLanguage: src, TargetLanguage: tgt},
					ServiceID: c.cfg.TranslationServiceID,
				},
			},
		},
		InputData: inputData{Audio: []audioPayload{{AudioContent: audioB64}}},
	}
}

// submit performs one attempt. Transient failures come back as
// *transientError, everything else as a terminal *apierr.Error.
func (c *implClient) submit(ctx context.Context, payload []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apierr.New(serviceName, apierr.KindInternal, 500, "build request: %v", err)
	}
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return parseResult(body)
	case http.StatusInternalServerError:
		return nil, &transientError{kind: apierr.KindServerError, status: 500, msg: truncate(string(body), 200)}
	case http.StatusUnauthorized:
		return nil, apierr.New(serviceName, apierr.KindAuthentication, 401,
			"authentication with the transcription service failed")
	case http.StatusBadRequest:
		return nil, apierr.New(serviceName, apierr.KindBadRequest, 400,
			"transcription service rejected the request: %s", truncate(string(body), 200))
	default:
		return nil, apierr.New(serviceName, apierr.KindUnexpectedStatus, resp.StatusCode,
			"unexpected status %d from transcription service", resp.StatusCode)
	}
}

// parseResult extracts the transcript and translation from a 200 response.
// Anything structurally short of two task outputs is a fatal incomplete
// response, not a retry candidate.
func parseResult(body []byte) (*Result, error) {
	var pr pipelineResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, apierr.New(serviceName, apierr.KindIncompleteResponse, 500,
			"transcription response is not valid JSON")
	}

	if len(pr.PipelineResponse) < 2 {
		return nil, apierr.New(serviceName, apierr.KindIncompleteResponse, 500,
			"transcription response missing expected outputs")
	}

	asr := pr.PipelineResponse[0]
	mt := pr.PipelineResponse[1]
	if len(asr.Output) == 0 || len(mt.Output) == 0 {
		return nil, apierr.New(serviceName, apierr.KindIncompleteResponse, 500,
			"transcription response has empty task outputs")
	}

	return &Result{
		Transcript:  asr.Output[0].Source,
		Translation: mt.Output[0].Target,
	}, nil
}

func classifyTransport(err error) *transientError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &transientError{kind: apierr.KindTimeout, status: 504, msg: "request timed out"}
	}
	return &transientError{kind: apierr.KindConnection, status: 502, msg: "connection failed"}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
