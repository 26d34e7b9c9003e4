package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatClient talks to an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewChatClient(url, apiKey, model string, httpClient *http.Client) (*ChatClient, error) {
	if apiKey == "" {
		return nil, errors.New("chat client: api key is empty")
	}
	if url == "" {
		return nil, errors.New("chat client: url is empty")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ChatClient{url: url, apiKey: apiKey, model: model, httpClient: httpClient}, nil
}

func (cc *ChatClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model:     cc.model,
		Messages:  []Message{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
		Stream:    false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("chat marshal failed: %w", err)
	}

	chatHttpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("chat request create failed: %w", err)
	}
	chatHttpReq.Header.Set("Authorization", "Bearer "+cc.apiKey)
	chatHttpReq.Header.Set("Content-Type", "application/json")
	chatHttpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := cc.httpClient.Do(chatHttpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("chat decode failed: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
