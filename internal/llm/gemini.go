package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiClient implements Client for the Gemini generateContent API.
type geminiClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}

	return &geminiClient{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  newHTTPClient(cfg.Timeout),
	}, nil
}

// Appraise sends the image inline with the prompt and asks for JSON output.
func (c *geminiClient) Appraise(ctx context.Context, image Image) (Appraisal, error) {
	requestBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{
						"inline_data": map[string]string{
							"mime_type": image.MIME,
							"data":      image.Data,
						},
					},
					{"text": BuildPrompt()},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":      c.temperature,
			"maxOutputTokens":  c.maxTokens,
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema(),
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	body, err := postJSON(ctx, c.httpClient, url, map[string]string{
		"x-goog-api-key": c.apiKey,
	}, requestBody, "gemini")
	if err != nil {
		return Appraisal{}, err
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return Appraisal{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Candidates) == 0 {
		return Appraisal{}, fmt.Errorf("no candidates in response")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return Appraisal{}, fmt.Errorf("no response from gemini")
	}

	return parseAppraisal(text.String())
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}
