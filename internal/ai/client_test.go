package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClient_Generate(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"mood\":\"calm\"}"}}]}`))
	}))
	defer srv.Close()

	client, err := NewChatClient(srv.URL, "secret", "test-model", srv.Client())
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "hello", 250)
	require.NoError(t, err)

	assert.Equal(t, `{"mood":"calm"}`, out)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 250, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestChatClient_Generate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewChatClient(srv.URL, "secret", "m", srv.Client())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestChatClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewChatClient(srv.URL, "secret", "m", srv.Client())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello", 10)
	assert.EqualError(t, err, "no choices in response")
}

func TestNewChatClient_RequiresKey(t *testing.T) {
	_, err := NewChatClient("http://localhost", "", "m", nil)
	assert.Error(t, err)
}

func TestNew_Providers(t *testing.T) {
	gen, err := New(context.Background(), Options{
		Provider:   ProviderOpenAI,
		ChatURL:    "http://localhost",
		ChatAPIKey: "k",
		ChatModel:  "m",
	})
	require.NoError(t, err)
	assert.IsType(t, &ChatClient{}, gen)

	_, err = New(context.Background(), Options{Provider: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Provider: ProviderVertex})
	assert.Error(t, err, "vertex without project must fail before any network call")
}

func TestUnavailable_Generate(t *testing.T) {
	_, err := Unavailable{}.Generate(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = Unavailable{Cause: errors.New("missing key file")}.Generate(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "missing key file")
}
