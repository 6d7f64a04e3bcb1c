package llms

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/internal"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/hashicorp/go-retryablehttp"
)

const DefaultTemperature = 0.0
const InvalidLLMModelError = "llm model is not set or is invalid"

const DefaultProvider = "default"

var log = internal.GetLogger()

// NewLLMClient returns a client for the service configured in llm.service.
func NewLLMClient(ctx context.Context, cfg *config.Config) (models.ChatLLM, error) {
	switch cfg.LLM.Service {
	case "openai":
		// if a custom OpenAI endpoint is set, do not validate the model name
		if cfg.LLM.OpenAIEndpoint != "" {
			return NewOpenAILLM(ctx, cfg)
		}
		if _, ok := ValidOpenAILLMs[cfg.LLM.Model]; !ok {
			return nil, fmt.Errorf(
				"invalid llm model \"%s\" for %s",
				cfg.LLM.Model,
				cfg.LLM.Service,
			)
		}
		return NewOpenAILLM(ctx, cfg)
	case "anthropic":
		if _, ok := ValidAnthropicLLMs[cfg.LLM.Model]; !ok {
			return nil, fmt.Errorf(
				"invalid llm model \"%s\" for %s",
				cfg.LLM.Model,
				cfg.LLM.Service,
			)
		}
		return NewAnthropicLLM(ctx, cfg)
	case "":
		// for backward compatibility
		return NewOpenAILLM(ctx, cfg)
	default:
		return nil, fmt.Errorf("invalid LLM service: %s", cfg.LLM.Service)
	}
}

type LLMError struct {
	message       string
	originalError error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: %s (original error: %v)", e.message, e.originalError)
}

func NewLLMError(message string, originalError error) *LLMError {
	return &LLMError{message: message, originalError: originalError}
}

var ValidOpenAILLMs = map[string]bool{
	"gpt-3.5-turbo":     true,
	"gpt-4":             true,
	"gpt-3.5-turbo-16k": true,
	"gpt-4-32k":         true,
}

var ValidAnthropicLLMs = map[string]bool{
	"claude-instant-1": true,
	"claude-2":         true,
}

var ValidLLMMap = internal.MergeMaps(ValidOpenAILLMs, ValidAnthropicLLMs)

func GetLLMModelName(cfg *config.Config) (string, error) {
	llmModel := cfg.LLM.Model
	// Don't validate if a custom OpenAI endpoint is set
	if cfg.LLM.OpenAIEndpoint != "" {
		return llmModel, nil
	}
	if llmModel == "" || !ValidLLMMap[llmModel] {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}
	return llmModel, nil
}

func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy

	return retryableHTTPClient
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors as they're used by OpenAI to indicate maximum
	// context length exceeded
	if resp != nil && resp.StatusCode == 400 {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}

var _ models.LLMRegistry = &Registry{}

// Registry holds one initialized client per provider the deployment has
// credentials for. "default" resolves to the configured llm.service.
type Registry struct {
	clients        map[string]models.ChatLLM
	defaultService string
}

// NewRegistry initializes a client for the configured service and, when
// credentials for the other supported provider are present, one for that
// provider too, so per-call model overrides can switch providers.
func NewRegistry(ctx context.Context, cfg *config.Config) (*Registry, error) {
	defaultService := cfg.LLM.Service
	if defaultService == "" {
		defaultService = "openai"
	}

	r := &Registry{
		clients:        make(map[string]models.ChatLLM),
		defaultService: defaultService,
	}

	client, err := NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.clients[defaultService] = client

	if defaultService != "anthropic" && cfg.LLM.AnthropicAPIKey != "" {
		secondary := *cfg
		secondary.LLM.Service = "anthropic"
		if _, ok := ValidAnthropicLLMs[secondary.LLM.Model]; !ok {
			secondary.LLM.Model = "claude-2"
		}
		anthropicClient, err := NewAnthropicLLM(ctx, &secondary)
		if err != nil {
			return nil, err
		}
		r.clients["anthropic"] = anthropicClient
	}

	return r, nil
}

func (r *Registry) Resolve(provider string) (models.ChatLLM, error) {
	if provider == "" || provider == DefaultProvider {
		provider = r.defaultService
	}
	client, ok := r.clients[provider]
	if !ok {
		return nil, fmt.Errorf("no llm client configured for provider: %s", provider)
	}
	return client, nil
}
