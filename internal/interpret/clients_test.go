package interpret

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/pkg/types"
)

func testRequest(t *testing.T) Request {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	fool, ok := cat.ByID(0)
	require.True(t, ok)
	return Request{
		Cards:    []types.Card{fool},
		Question: "What should I focus on?",
		Locale:   types.LocaleEN,
	}
}

func TestAnthropicClientSendsSystemAndAuthHeaders(t *testing.T) {
	var got anthropicMessagesRequest
	var apiKey, version string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("x-api-key")
		version = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"text": "a calm reading"}},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL})
	reply, err := c.Interpret(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "a calm reading", reply)
	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, "2023-06-01", version)
	assert.Contains(t, got.System, "Tarot")
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "The Fool")
}

func TestOpenAIClientSendsSystemMessage(t *testing.T) {
	var got openAIChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "a calm reading"}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "secret", BaseURL: srv.URL})
	reply, err := c.Interpret(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "a calm reading", reply)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestInterpretTruncatesLongReplies(t *testing.T) {
	long := strings.Repeat("x", MaxReplyLength+500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"text": long}},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL})
	reply, err := c.Interpret(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Len(t, []rune(reply), MaxReplyLength)
}

func TestInterpretSurfacesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL})
	_, err := c.Interpret(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewInterpreterSelectsProvider(t *testing.T) {
	a, err := NewInterpreter(ProviderConfig{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, (*AnthropicClient)(nil), a)

	o, err := NewInterpreter(ProviderConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, (*OpenAIClient)(nil), o)

	d, err := NewInterpreter(ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, (*AnthropicClient)(nil), d)

	_, err = NewInterpreter(ProviderConfig{Provider: "mistral"})
	assert.Error(t, err)
}
