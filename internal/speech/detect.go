package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const detectTimeout = 30 * time.Second

// detectLanguage runs a best-effort language probe against the pipeline
// endpoint. Callers treat the result as advisory; any failure is reported as
// an error for the caller to swallow.
func (c *implClient) detectLanguage(ctx context.Context, audioB64 string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	body := pipelineRequest{
		PipelineTasks: []pipelineTask{
			{
				TaskType: taskLangDetection,
				Config:   taskConfig{ServiceID: c.cfg.LangDetectServiceID},
			},
		},
		InputData: inputData{Audio: []audioPayload{{AudioContent: audioB64}}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode probe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("probe returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read probe response: %w", err)
	}

	var pr pipelineResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return "", fmt.Errorf("decode probe response: %w", err)
	}

	if len(pr.PipelineResponse) == 0 ||
		len(pr.PipelineResponse[0].Output) == 0 ||
		len(pr.PipelineResponse[0].Output[0].LangPrediction) == 0 {
		return "", fmt.Errorf("probe response carries no prediction")
	}

	return NormalizeLanguage(pr.PipelineResponse[0].Output[0].LangPrediction[0].LangCode), nil
}
