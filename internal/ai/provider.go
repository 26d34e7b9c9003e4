package ai

import (
	"context"
	"fmt"
	"net/http"
)

const (
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

type Options struct {
	Provider string
	Vertex   VertexConfig

	ChatURL    string
	ChatAPIKey string
	ChatModel  string
	HTTPClient *http.Client
}

// New builds the generator named by opts.Provider. Callers fall back to
// Unavailable when it returns an error.
func New(ctx context.Context, opts Options) (Generator, error) {
	switch opts.Provider {
	case ProviderVertex, "":
		return NewVertexClient(ctx, opts.Vertex)
	case ProviderOpenAI:
		return NewChatClient(opts.ChatURL, opts.ChatAPIKey, opts.ChatModel, opts.HTTPClient)
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", opts.Provider)
	}
}
