package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contentcraft-api/internal/logger"

	"github.com/sirupsen/logrus"
)

// CompletionOptions tune one model call. Each pipeline stage uses its
// own temperature.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}

// ModelClient is the boundary to the hosted text-generation endpoint.
// Every pipeline stage is one Complete call with a distinct system
// instruction.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string, opts CompletionOptions) (string, error)
}

const (
	huggingFaceBaseURL = "https://api-inference.huggingface.co"
	defaultTopP        = 0.9
)

// HuggingFaceClient calls the HuggingFace inference API. The model is
// an instruction-following text generator, so the chat turns are
// flattened into a single prompt.
type HuggingFaceClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFaceClient(apiKey, model string) *HuggingFaceClient {
	return &HuggingFaceClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: huggingFaceBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type hfParameters struct {
	Temperature    float32 `json:"temperature"`
	MaxNewTokens   int     `json:"max_new_tokens"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
	Text          string `json:"text"`
}

func (c *HuggingFaceClient) Complete(ctx context.Context, systemPrompt, userMessage string, opts CompletionOptions) (string, error) {
	prompt := fmt.Sprintf("%s\n\nUser: %s\nAssistant:", systemPrompt, userMessage)

	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			Temperature:    opts.Temperature,
			MaxNewTokens:   opts.MaxTokens,
			TopP:           defaultTopP,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		logger.LogEvent(logrus.ErrorLevel, "Inference API call failed", logrus.Fields{
			"model":  c.model,
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return "", fmt.Errorf("inference API error: status %d", resp.StatusCode)
	}

	return parseGeneration(body)
}

// parseGeneration handles the inference API's response shapes: an
// array of generations or a single generation object.
func parseGeneration(body []byte) (string, error) {
	var list []hfGeneration
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		if list[0].GeneratedText != "" {
			return list[0].GeneratedText, nil
		}
		if list[0].Text != "" {
			return list[0].Text, nil
		}
	}

	var single hfGeneration
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", fmt.Errorf("unexpected response format from inference API")
}
