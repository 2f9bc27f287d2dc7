package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	replicateBaseURL = "https://api.replicate.com/v1"
	defaultModel     = "black-forest-labs/flux-schnell"

	// fixed tuning for fast low-step generation
	schedulerName      = "K_EULER"
	numInferenceSteps  = 4
	guidanceScale      = 7.5
	generationDeadline = 60 * time.Second
)

// shared HTTP client for Replicate API calls
var replicateHTTPClient = &http.Client{
	Timeout: generationDeadline,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// outbound rate limiter for Replicate API calls (10 requests/second with burst capacity of 5)
var replicateRateLimiter = rate.NewLimiter(10, 5)

type predictionInput struct {
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumOutputs        int     `json:"num_outputs"`
	Scheduler         string  `json:"scheduler"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type predictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

type ReplicateConfig struct {
	APIToken string
	Model    string // e.g., "black-forest-labs/flux-schnell"
	BaseURL  string // override for tests
}

// ReplicateGenerator invokes Replicate's synchronous predictions API.
type ReplicateGenerator struct {
	config     ReplicateConfig
	httpClient *http.Client
}

var _ Generator = (*ReplicateGenerator)(nil)

func NewReplicateGenerator(config ReplicateConfig) *ReplicateGenerator {
	if config.Model == "" {
		config.Model = defaultModel
	}

	if config.BaseURL == "" {
		config.BaseURL = replicateBaseURL
	}

	return &ReplicateGenerator{
		config:     config,
		httpClient: replicateHTTPClient,
	}
}

// generates images for the request, blocking until the prediction completes.
// Returned errors are classified; the caller maps them to a friendly message.
func (g *ReplicateGenerator) Generate(ctx context.Context, req Request) ([]Output, error) {
	width, height := resolveDimensions(req)

	reqBody := predictionRequest{
		Input: predictionInput{
			Prompt:            enhancePrompt(req),
			NegativePrompt:    req.NegativePrompt,
			Width:             width,
			Height:            height,
			NumOutputs:        resolveNumOutputs(req),
			Scheduler:         schedulerName,
			NumInferenceSteps: numInferenceSteps,
			GuidanceScale:     guidanceScale,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, Classify(fmt.Errorf("failed to marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s/predictions", g.config.BaseURL, g.config.Model)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, Classify(fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.config.APIToken)
	// block until the prediction finishes instead of polling
	httpReq.Header.Set("Prefer", "wait")

	if err := replicateRateLimiter.Wait(ctx); err != nil {
		return nil, Classify(fmt.Errorf("rate limiter error: %w", err))
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, Classify(fmt.Errorf("failed to send request: %w", err))
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, Classify(fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var prediction predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, Classify(fmt.Errorf("failed to decode response: %w", err))
	}

	if prediction.Status == "failed" || prediction.Status == "canceled" {
		return nil, Classify(fmt.Errorf("prediction %s: %s", prediction.Status, prediction.Error))
	}

	return parsePredictionOutput(prediction.Output), nil
}

// Replicate delivers each image either as a hosted URL or as an inline
// data: URI carrying the raw bytes; a single batch may mix both shapes.
func parsePredictionOutput(raw json.RawMessage) []Output {
	if len(raw) == 0 {
		return nil
	}

	var items []string

	if err := json.Unmarshal(raw, &items); err != nil {
		// single-output models return a bare string
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil
		}

		items = []string{single}
	}

	outputs := make([]Output, 0, len(items))

	for _, item := range items {
		outputs = append(outputs, parseOutputItem(item))
	}

	return outputs
}

func parseOutputItem(item string) Output {
	if encoded, found := strings.CutPrefix(item, dataURLPrefix); found {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil {
			return Output{Kind: OutputBytes, Bytes: decoded}
		}
	}

	return Output{Kind: OutputURL, URL: item}
}
