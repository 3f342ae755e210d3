// Package summarize turns bounded diff text into a short commit message.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is returned when the summarization service call fails, whether
// from transport problems or a non-success HTTP status.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("summarization API status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("summarization API: %s", e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client is the summarization collaborator: given a bounded text prompt it
// returns a short text, or fails.
type Client interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient calls an OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the endpoint at baseURL, for example
// "https://api.openai.com/v1".
func NewOpenAIClient(baseURL, model, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize sends prompt as a one-shot chat completion and returns the
// response content. Empty content is returned as-is; substituting a
// placeholder is the caller's policy, not the client's.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &APIError{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &APIError{Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return "", &APIError{Message: err.Error(), Err: err}
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &APIError{StatusCode: res.StatusCode, Message: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &APIError{Message: "decode response", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
