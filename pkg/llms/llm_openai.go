package llms

import (
	"context"
	"time"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const OpenAIAPITimeout = 90 * time.Second
const MaxOpenAIAPIRequestAttempts = 5
const OpenAIAPIKeyNotSetError = "NEXTSPARK_OPENAI_API_KEY is not set" //nolint:gosec

var _ models.ChatLLM = &OpenAILLM{}

func NewOpenAILLM(ctx context.Context, cfg *config.Config) (*OpenAILLM, error) {
	zllm := &OpenAILLM{}
	err := zllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return zllm, nil
}

type OpenAILLM struct {
	llm *openai.Chat
	tkm *tiktoken.Tiktoken
}

func (zllm *OpenAILLM) Init(_ context.Context, cfg *config.Config) error {
	// Initialize the Tiktoken client
	encoding := "cl100k_base"
	tkm, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return err
	}
	zllm.tkm = tkm

	options, err := zllm.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options
	llm, err := openai.NewChat(options...)
	if err != nil {
		return err
	}
	zllm.llm = llm

	return nil
}

func (zllm *OpenAILLM) Call(ctx context.Context,
	messages []schema.ChatMessage,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if zllm.llm == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, OpenAIAPITimeout)
	defer cancel()

	completion, err := zllm.llm.Call(thisCtx, messages, options...)
	if err != nil {
		return "", err
	}

	return completion.GetContent(), nil
}

// CallStructured constrains the completion with an OpenAI function
// definition. The function-call arguments are the candidate JSON; when the
// model answers with plain content instead, that content is returned and
// left to the caller's schema validation.
func (zllm *OpenAILLM) CallStructured(ctx context.Context,
	messages []schema.ChatMessage,
	fn *llms.FunctionDefinition,
	options ...llms.CallOption,
) (string, error) {
	if zllm.llm == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}
	options = append(options, llms.WithFunctions([]llms.FunctionDefinition{*fn}))

	thisCtx, cancel := context.WithTimeout(ctx, OpenAIAPITimeout)
	defer cancel()

	completion, err := zllm.llm.Call(thisCtx, messages, options...)
	if err != nil {
		return "", err
	}

	if completion.FunctionCall != nil {
		return completion.FunctionCall.Arguments, nil
	}

	return completion.GetContent(), nil
}

func (zllm *OpenAILLM) StructuredOutputMethod() models.StructuredOutputMethod {
	return models.StructuredOutputFunctionCalling
}

// GetTokenCount returns the number of tokens in the text
func (zllm *OpenAILLM) GetTokenCount(text string) (int, error) {
	return len(zllm.tkm.Encode(text, nil, nil)), nil
}

func (zllm *OpenAILLM) configureClient(cfg *config.Config) ([]openai.Option, error) {
	apiKey := cfg.LLM.OpenAIAPIKey
	// If the key is not set, log a fatal error and exit
	if apiKey == "" {
		log.Fatal(OpenAIAPIKeyNotSetError)
	}

	retryableHTTPClient := NewRetryableHTTPClient(
		MaxOpenAIAPIRequestAttempts,
		OpenAIAPITimeout,
	)

	options := make([]openai.Option, 0)
	options = append(
		options,
		openai.WithHTTPClient(retryableHTTPClient.StandardClient()),
		openai.WithModel(cfg.LLM.Model),
		openai.WithToken(apiKey),
	)
	if cfg.LLM.OpenAIEndpoint != "" {
		options = append(options, openai.WithBaseURL(cfg.LLM.OpenAIEndpoint))
	}
	if cfg.LLM.OpenAIOrgID != "" {
		options = append(options, openai.WithOrganization(cfg.LLM.OpenAIOrgID))
	}

	return options, nil
}
