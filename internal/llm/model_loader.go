package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelLoader preloads models into a llama.cpp router via /models/load, so
// the first question does not pay the model cold-start cost. Hosted
// OpenAI-compatible providers have no such endpoint; skip the loader there.
type ModelLoader struct {
	baseURL string
	client  *http.Client
}

// NewModelLoader creates a new model loader.
func NewModelLoader(baseURL string) *ModelLoader {
	return &ModelLoader{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

type loadModelRequest struct {
	Model string `json:"model"`
}

type loadModelResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type modelStatus struct {
	ID      string `json:"id"`
	InCache bool   `json:"in_cache"`
	Status  struct {
		Value    string `json:"value"`
		ExitCode *int   `json:"exit_code,omitempty"`
		Failed   *bool  `json:"failed,omitempty"`
	} `json:"status"`
}

type modelsResponse struct {
	Data []modelStatus `json:"data"`
}

// status fetches the router's view of one model. A model absent from the
// listing comes back as a zero value with no error.
func (ml *ModelLoader) status(ctx context.Context, modelName string) (modelStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", ml.baseURL+"/models", nil)
	if err != nil {
		return modelStatus{}, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := ml.client.Do(req)
	if err != nil {
		return modelStatus{}, fmt.Errorf("failed to check model status: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return modelStatus{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return modelStatus{}, fmt.Errorf("failed to decode models response: %w", err)
	}

	for _, m := range parsed.Data {
		if m.ID == modelName {
			return m, nil
		}
	}
	return modelStatus{}, nil
}

// LoadModel asks the router to load the model and polls until it lands in
// cache. Already-cached models return immediately. The load endpoint answers
// before the load finishes, so polling is the only way to learn the outcome.
func (ml *ModelLoader) LoadModel(ctx context.Context, modelName string) error {
	if st, err := ml.status(ctx, modelName); err == nil && st.InCache {
		return nil
	}

	body, err := json.Marshal(loadModelRequest{Model: modelName})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ml.baseURL+"/models/load", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ml.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed loadModelResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !parsed.Success {
		return fmt.Errorf("model load failed: %s", parsed.Error)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	deadline := time.Now().Add(30 * time.Second)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		st, err := ml.status(ctx, modelName)
		if err != nil {
			continue
		}
		if st.InCache {
			return nil
		}
		if st.Status.Failed != nil && *st.Status.Failed {
			exitCode := 0
			if st.Status.ExitCode != nil {
				exitCode = *st.Status.ExitCode
			}
			return fmt.Errorf("model load failed with exit code %d", exitCode)
		}
	}

	return fmt.Errorf("model did not load within timeout period")
}
