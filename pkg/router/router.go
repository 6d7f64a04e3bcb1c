package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/internal"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

var log = internal.GetLogger()

const (
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultHistoryWindow = 6

	maxRetryDelay         = 30 * time.Second
	routerMaxOutputTokens = 1024
)

// GenericClarificationQuestion is returned when classification degrades
// after exhausting all attempts.
const GenericClarificationQuestion = "I'm sorry, I didn't quite understand that. Could you rephrase your request?"

// ErrClassificationExhausted is recorded on the degraded result when all
// attempts produced no valid envelope.
var ErrClassificationExhausted = errors.New("intent router could not understand the request")

var _ models.IntentClassifier = &IntentRouter{}

// IntentRouter classifies free-text messages into routed intents against
// a fixed orchestrator configuration. The derived schema and prompt are
// immutable after construction, so a single router is safe for concurrent
// Classify calls. No state is retained between calls.
type IntentRouter struct {
	registry models.LLMRegistry
	tracer   models.Tracer
	orch     *models.OrchestratorConfig

	schema *IntentSchema
	prompt string
	policy retrypolicy.RetryPolicy[*routerEnvelope]

	maxRetries    int
	retryDelay    time.Duration
	historyWindow int
	temperature   float64
	defaultModel  string
	debug         bool
}

// NewIntentRouter derives the schema and prompt for the given orchestrator
// configuration and returns a router ready for concurrent use.
func NewIntentRouter(
	cfg *config.Config,
	orch *models.OrchestratorConfig,
	registry models.LLMRegistry,
	tracer models.Tracer,
) (*IntentRouter, error) {
	if orch == nil {
		return nil, errors.New("orchestrator config is nil")
	}
	if err := validateToolNames(orch); err != nil {
		return nil, err
	}

	prompt, err := BuildRouterPrompt(orch)
	if err != nil {
		return nil, fmt.Errorf("failed to build router prompt: %w", err)
	}

	r := &IntentRouter{
		registry:      registry,
		tracer:        tracer,
		orch:          orch,
		schema:        BuildIntentSchema(orch),
		prompt:        prompt,
		maxRetries:    cfg.Router.MaxRetries,
		retryDelay:    time.Duration(cfg.Router.RetryDelayMs) * time.Millisecond,
		historyWindow: cfg.Router.HistoryWindow,
		temperature:   cfg.LLM.Temperature,
		defaultModel:  cfg.LLM.Model,
		debug:         cfg.Router.Debug,
	}
	if r.maxRetries <= 0 {
		r.maxRetries = DefaultMaxRetries
	}
	if r.retryDelay <= 0 {
		r.retryDelay = DefaultRetryDelay
	}
	if r.historyWindow <= 0 {
		r.historyWindow = DefaultHistoryWindow
	}

	// MaxRetries counts retries after the first attempt, so the total
	// number of attempts is r.maxRetries. Backoff doubles per retry.
	r.policy = retrypolicy.Builder[*routerEnvelope]().
		WithBackoff(r.retryDelay, maxRetryDelay).
		WithMaxRetries(r.maxRetries - 1).
		Build()

	return r, nil
}

// Schema returns the derived intent schema.
func (r *IntentRouter) Schema() *IntentSchema {
	return r.schema
}

// Prompt returns the derived system prompt.
func (r *IntentRouter) Prompt() string {
	return r.prompt
}

// Classify classifies the input message against the router's catalog.
// Attempts run strictly in order; within an attempt the structured-output
// strategy always precedes the manual-JSON fallback. Per-attempt errors
// are swallowed; after exhausting all attempts Classify returns the
// degraded clarification envelope rather than an error. An error is
// returned only for invalid requests (empty input, unknown provider).
func (r *IntentRouter) Classify(
	ctx context.Context,
	req *models.ClassifyRequest,
) (*models.ClassificationResult, error) {
	if req == nil || strings.TrimSpace(req.Input) == "" {
		return nil, models.ErrEmptyInput
	}

	provider, model := r.providerModel(req)
	llm, err := r.registry.Resolve(provider)
	if err != nil {
		return nil, err
	}

	var span models.Span
	if r.tracer != nil && req.Principal != nil {
		ctx, span = r.tracer.StartSpan(ctx, req.Principal, models.SpanStartOptions{
			Name:     "intent_router.classify",
			Type:     "llm",
			Provider: provider,
			Model:    model,
			Input:    req.Input,
		})
	}

	messages := r.buildMessages(req)
	opts := r.callOptions(req)

	env, err := r.classifyWithRetry(ctx, llm, messages, opts)
	if err != nil {
		log.Warnf("intent router: classification exhausted retries: %v", err)
		result := degradedResult(err)
		if span != nil {
			span.End(models.SpanEndOptions{Err: err})
		}
		return result, nil
	}

	result := envelopeToResult(env)
	if span != nil {
		span.End(models.SpanEndOptions{Output: resultSummary(result)})
	}
	return result, nil
}

// classifyWithRetry runs up to maxRetries attempts with exponential
// backoff between them. Messages are identical across attempts.
func (r *IntentRouter) classifyWithRetry(
	ctx context.Context,
	llm models.ChatLLM,
	messages []schema.ChatMessage,
	opts []llms.CallOption,
) (*routerEnvelope, error) {
	attempt := 0
	env, err := failsafe.NewExecutor[*routerEnvelope](r.policy).
		WithContext(ctx).
		Get(func() (*routerEnvelope, error) {
			attempt++
			return r.attempt(ctx, llm, messages, opts, attempt)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationExhausted, err)
	}
	return env, nil
}

type classifyStrategy struct {
	name string
	run  func(
		ctx context.Context,
		llm models.ChatLLM,
		messages []schema.ChatMessage,
		opts []llms.CallOption,
	) (string, error)
}

func (r *IntentRouter) strategies() []classifyStrategy {
	return []classifyStrategy{
		{
			name: "structured",
			run: func(
				ctx context.Context,
				llm models.ChatLLM,
				messages []schema.ChatMessage,
				opts []llms.CallOption,
			) (string, error) {
				return llm.CallStructured(ctx, messages, r.schema.FunctionDef, opts...)
			},
		},
		{
			name: "manualJSON",
			run: func(
				ctx context.Context,
				llm models.ChatLLM,
				messages []schema.ChatMessage,
				opts []llms.CallOption,
			) (string, error) {
				text, err := llm.Call(ctx, messages, opts...)
				if err != nil {
					return "", err
				}
				return ExtractJSONBlock(text), nil
			},
		},
	}
}

// attempt tries each strategy in order and returns the first validated
// envelope. Strategy failures are logged, never raised past the attempt.
func (r *IntentRouter) attempt(
	ctx context.Context,
	llm models.ChatLLM,
	messages []schema.ChatMessage,
	opts []llms.CallOption,
	n int,
) (*routerEnvelope, error) {
	var lastErr error
	for _, strat := range r.strategies() {
		raw, err := strat.run(ctx, llm, messages, opts)
		if err != nil {
			r.debugf("intent router: %s strategy failed on attempt %d: %v", strat.name, n, err)
			lastErr = err
			continue
		}

		env, err := r.schema.ParseAndValidate(raw)
		if err != nil {
			r.debugf("intent router: %s result failed validation on attempt %d: %v", strat.name, n, err)
			lastErr = err
			continue
		}

		return env, nil
	}

	return nil, fmt.Errorf("attempt %d produced no valid envelope: %w", n, lastErr)
}

// buildMessages assembles the system prompt, the bounded recent history
// and the new input. The result is reused unchanged across all attempts.
func (r *IntentRouter) buildMessages(req *models.ClassifyRequest) []schema.ChatMessage {
	history := boundHistory(req.History, r.historyWindow)

	messages := make([]schema.ChatMessage, 0, len(history)+2)
	messages = append(messages, schema.SystemChatMessage{Content: r.prompt})
	for _, m := range history {
		switch m.Role {
		case models.RoleAI, "assistant":
			messages = append(messages, schema.AIChatMessage{Content: m.Content})
		case models.RoleSystem:
			messages = append(messages, schema.SystemChatMessage{Content: m.Content})
		default:
			messages = append(messages, schema.HumanChatMessage{Content: m.Content})
		}
	}
	return append(messages, schema.HumanChatMessage{Content: req.Input})
}

func (r *IntentRouter) callOptions(req *models.ClassifyRequest) []llms.CallOption {
	temperature := r.temperature
	if req.Model != nil && req.Model.Temperature != nil {
		temperature = *req.Model.Temperature
	}

	opts := []llms.CallOption{
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(routerMaxOutputTokens),
	}
	if req.Model != nil && req.Model.Model != "" {
		opts = append(opts, llms.WithModel(req.Model.Model))
	}
	return opts
}

func (r *IntentRouter) providerModel(req *models.ClassifyRequest) (string, string) {
	provider := ""
	model := r.defaultModel
	if req.Model != nil {
		provider = req.Model.Provider
		if req.Model.Model != "" {
			model = req.Model.Model
		}
	}
	return provider, model
}

func (r *IntentRouter) debugf(format string, args ...interface{}) {
	if r.debug {
		log.Debugf(format, args...)
	}
}

func boundHistory(history []models.Message, window int) []models.Message {
	if window <= 0 || len(history) <= window {
		return history
	}
	return history[len(history)-window:]
}

func validateToolNames(orch *models.OrchestratorConfig) error {
	seen := make(map[string]bool, len(orch.Tools))
	for _, tool := range orch.Tools {
		if tool.Name == "" {
			return errors.New("tool with empty name in orchestrator config")
		}
		if seen[tool.Name] {
			return fmt.Errorf("duplicate tool name in orchestrator config: %s", tool.Name)
		}
		seen[tool.Name] = true
	}
	return nil
}

func envelopeToResult(env *routerEnvelope) *models.ClassificationResult {
	intents := make([]models.Intent, 0, len(env.Intents))
	for _, intent := range env.Intents {
		intents = append(intents, models.Intent{
			Type:         intent.Type,
			Action:       models.IntentAction(intent.Action),
			Parameters:   intent.Parameters,
			OriginalText: intent.OriginalText,
		})
	}

	result := &models.ClassificationResult{
		Intents:            intents,
		NeedsClarification: env.NeedsClarification,
	}
	if env.ClarificationQuestion != nil {
		result.ClarificationQuestion = *env.ClarificationQuestion
	}
	return result
}

func degradedResult(err error) *models.ClassificationResult {
	return &models.ClassificationResult{
		Intents:               []models.Intent{},
		NeedsClarification:    true,
		ClarificationQuestion: GenericClarificationQuestion,
		Error:                 err.Error(),
	}
}

// resultSummary is the redacted span payload: intent counts and
// type/action pairs, never raw parameters.
func resultSummary(result *models.ClassificationResult) map[string]interface{} {
	pairs := make([]string, 0, len(result.Intents))
	for _, intent := range result.Intents {
		pairs = append(pairs, intent.Type+":"+string(intent.Action))
	}
	return map[string]interface{}{
		"intentCount":        len(result.Intents),
		"intents":            strings.Join(pairs, ","),
		"needsClarification": result.NeedsClarification,
	}
}
