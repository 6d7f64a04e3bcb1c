package llms

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/schema"
)

const AnthropicAPITimeout = 30 * time.Second
const AnthropicAPIKeyNotSetError = "NEXTSPARK_ANTHROPIC_API_KEY is not set" //nolint:gosec

var _ models.ChatLLM = &AnthropicLLM{}

func NewAnthropicLLM(ctx context.Context, cfg *config.Config) (*AnthropicLLM, error) {
	zllm := &AnthropicLLM{}
	err := zllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return zllm, nil
}

type AnthropicLLM struct {
	client *anthropic.LLM
}

func (zllm *AnthropicLLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := zllm.configureClient(cfg)
	if err != nil {
		return err
	}

	// Create a new client instance with options
	llm, err := anthropic.New(options...)
	if err != nil {
		return err
	}
	zllm.client = llm

	return nil
}

func (zllm *AnthropicLLM) Call(ctx context.Context,
	messages []schema.ChatMessage,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if zllm.client == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	if len(options) == 0 {
		options = append(options, llms.WithTemperature(DefaultTemperature))
	}

	thisCtx, cancel := context.WithTimeout(ctx, AnthropicAPITimeout)
	defer cancel()

	prompt := flattenToAnthropicPrompt(messages)

	completion, err := zllm.client.Call(thisCtx, prompt, options...)
	if err != nil {
		return "", err
	}

	return completion, nil
}

// CallStructured emulates structured output for Anthropic models by
// appending the JSON schema as an instruction (JSON mode). Validation
// happens at the caller.
func (zllm *AnthropicLLM) CallStructured(ctx context.Context,
	messages []schema.ChatMessage,
	fn *llms.FunctionDefinition,
	options ...llms.CallOption,
) (string, error) {
	schemaJSON, err := json.Marshal(fn.Parameters)
	if err != nil {
		return "", NewLLMError("failed to marshal structured output schema", err)
	}

	instruction := schema.SystemChatMessage{
		Content: "Respond only with a single JSON object conforming to this JSON Schema, with no other text:\n" +
			string(schemaJSON),
	}
	withSchema := make([]schema.ChatMessage, 0, len(messages)+1)
	withSchema = append(withSchema, messages...)
	withSchema = append(withSchema, instruction)

	return zllm.Call(ctx, withSchema, options...)
}

func (zllm *AnthropicLLM) StructuredOutputMethod() models.StructuredOutputMethod {
	return models.StructuredOutputJSONMode
}

// GetTokenCount returns the number of tokens in the text.
// Return 0 for now, since we don't have a token count function
func (zllm *AnthropicLLM) GetTokenCount(_ string) (int, error) {
	return 0, nil
}

func (zllm *AnthropicLLM) configureClient(cfg *config.Config) ([]anthropic.Option, error) {
	apiKey := cfg.LLM.AnthropicAPIKey
	// If the key is not set, log a fatal error and exit
	if apiKey == "" {
		log.Fatal(AnthropicAPIKeyNotSetError)
	}

	options := make([]anthropic.Option, 0)
	options = append(
		options,
		anthropic.WithModel(cfg.LLM.Model),
		anthropic.WithToken(apiKey),
	)

	return options, nil
}

// flattenToAnthropicPrompt renders chat messages into the Human:/Assistant:
// transcript format the Anthropic completion API expects.
func flattenToAnthropicPrompt(messages []schema.ChatMessage) string {
	var sb strings.Builder
	for _, message := range messages {
		switch message.GetType() {
		case schema.ChatMessageTypeAI:
			sb.WriteString("Assistant: ")
		case schema.ChatMessageTypeSystem:
			// Anthropic's completion API has no system role; system content
			// is prepended to the human transcript.
			sb.WriteString("Human: ")
		default:
			sb.WriteString("Human: ")
		}
		sb.WriteString(message.GetContent())
		sb.WriteString("\n\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
