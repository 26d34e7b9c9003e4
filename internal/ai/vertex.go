package ai

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type VertexConfig struct {
	Project  string
	Location string
	Model    string
	// CredentialsFile is a service account key. Empty means application
	// default credentials.
	CredentialsFile  string
	ResponseMIMEType string
}

// VertexClient generates text with a Gemini model hosted on Vertex AI.
type VertexClient struct {
	client   *genai.Client
	model    string
	mimeType string
}

func NewVertexClient(ctx context.Context, cfg VertexConfig) (*VertexClient, error) {
	op := "ai.NewVertexClient"

	if cfg.Project == "" || cfg.Location == "" {
		return nil, fmt.Errorf("%s: project and location are required", op)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s: model is required", op)
	}

	creds, err := loadCredentials(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.Project,
		Location:    cfg.Location,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &VertexClient{client: client, model: cfg.Model, mimeType: cfg.ResponseMIMEType}, nil
}

func loadCredentials(path string) (*auth.Credentials, error) {
	opts := &credentials.DetectOptions{Scopes: []string{cloudPlatformScope}}
	if path == "" {
		return credentials.DetectDefault(opts)
	}
	return credentials.NewCredentialsFromFile(credentials.ServiceAccount, path, opts)
}

func (vc *VertexClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(maxTokens),
		ResponseMIMEType: vc.mimeType,
	}

	res, err := vc.client.Models.GenerateContent(ctx, vc.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("vertex generate failed: %w", err)
	}

	// Blocked prompts come back with no candidates.
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("vertex returned no candidates")
	}

	return res.Text(), nil
}
