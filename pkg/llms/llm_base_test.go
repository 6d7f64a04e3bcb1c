package llms

import (
	"context"
	"net/http"
	"testing"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestNewLLMClient_InvalidService(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLM{
			Service: "cohere",
			Model:   "command",
		},
	}

	_, err := NewLLMClient(context.Background(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM service")
}

func TestNewLLMClient_InvalidModel(t *testing.T) {
	testCases := []struct {
		name    string
		service string
		model   string
	}{
		{name: "unknown openai model", service: "openai", model: "gpt-9"},
		{name: "unknown anthropic model", service: "anthropic", model: "claude-99"},
		{name: "openai model for anthropic", service: "anthropic", model: "gpt-4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				LLM: config.LLM{
					Service: tc.service,
					Model:   tc.model,
				},
			}
			_, err := NewLLMClient(context.Background(), cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid llm model")
		})
	}
}

func TestGetLLMModelName(t *testing.T) {
	t.Run("valid model", func(t *testing.T) {
		cfg := &config.Config{
			LLM: config.LLM{Model: "gpt-3.5-turbo"},
		}
		model, err := GetLLMModelName(cfg)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", model)
	})

	t.Run("invalid model", func(t *testing.T) {
		cfg := &config.Config{
			LLM: config.LLM{Model: "not-a-model"},
		}
		_, err := GetLLMModelName(cfg)
		assert.Error(t, err)
	})

	t.Run("custom endpoint skips validation", func(t *testing.T) {
		cfg := &config.Config{
			LLM: config.LLM{
				Model:          "my-local-model",
				OpenAIEndpoint: "http://localhost:8080/v1",
			},
		}
		model, err := GetLLMModelName(cfg)
		assert.NoError(t, err)
		assert.Equal(t, "my-local-model", model)
	})
}

func TestRetryPolicy(t *testing.T) {
	t.Run("does not retry 400 responses", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadRequest}
		shouldRetry, err := retryPolicy(context.Background(), resp, nil)
		assert.NoError(t, err)
		assert.False(t, shouldRetry)
	})

	t.Run("retries 500 responses", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusInternalServerError}
		shouldRetry, err := retryPolicy(context.Background(), resp, nil)
		assert.NoError(t, err)
		assert.True(t, shouldRetry)
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		shouldRetry, err := retryPolicy(ctx, nil, nil)
		assert.Error(t, err)
		assert.False(t, shouldRetry)
	})
}

func TestRegistryResolve(t *testing.T) {
	openaiClient := &OpenAILLM{}
	registry := &Registry{
		clients:        map[string]models.ChatLLM{"openai": openaiClient},
		defaultService: "openai",
	}

	t.Run("resolves default alias", func(t *testing.T) {
		client, err := registry.Resolve(DefaultProvider)
		assert.NoError(t, err)
		assert.Equal(t, openaiClient, client)
	})

	t.Run("resolves empty provider", func(t *testing.T) {
		client, err := registry.Resolve("")
		assert.NoError(t, err)
		assert.Equal(t, openaiClient, client)
	})

	t.Run("unknown provider errors", func(t *testing.T) {
		_, err := registry.Resolve("anthropic")
		assert.Error(t, err)
	})
}
