package models

import (
	"context"

	"github.com/NextSpark-js/nextspark-sub000/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// StructuredOutputMethod is the provider's best-supported way of
// constraining a completion to a schema.
type StructuredOutputMethod string

const (
	StructuredOutputFunctionCalling StructuredOutputMethod = "functionCalling"
	StructuredOutputJSONMode        StructuredOutputMethod = "jsonMode"
	StructuredOutputJSONSchema      StructuredOutputMethod = "jsonSchema"
)

type ChatLLM interface {
	// Call runs a chat completion against the given messages and returns
	// the raw text content of the completion.
	Call(
		ctx context.Context,
		messages []schema.ChatMessage,
		options ...llms.CallOption,
	) (string, error)
	// CallStructured runs a chat completion constrained to the given
	// function definition's parameter schema, using the provider's
	// StructuredOutputMethod. The returned string is the raw candidate
	// JSON; callers validate it against their own schema.
	CallStructured(
		ctx context.Context,
		messages []schema.ChatMessage,
		fn *llms.FunctionDefinition,
		options ...llms.CallOption,
	) (string, error)
	// StructuredOutputMethod returns how this provider constrains output.
	StructuredOutputMethod() StructuredOutputMethod
	// GetTokenCount returns the number of tokens in the given text
	GetTokenCount(text string) (int, error)
	// Init initializes the LLM
	Init(ctx context.Context, cfg *config.Config) error
}

// LLMRegistry resolves a provider name to a configured client.
// The provider name "default" (or empty) resolves to the deployment's
// configured service.
type LLMRegistry interface {
	Resolve(provider string) (ChatLLM, error)
}
