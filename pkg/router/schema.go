package router

import (
	"encoding/json"
	"fmt"

	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/tmc/langchaingo/llms"
)

// StructuredOutputName is the function name providers see for the
// classification schema.
const StructuredOutputName = "classify_intents"

var validate = validator.New()

var intentActionValues = []string{
	string(models.ActionList),
	string(models.ActionCreate),
	string(models.ActionUpdate),
	string(models.ActionDelete),
	string(models.ActionSearch),
	string(models.ActionGet),
	string(models.ActionUnknown),
}

// routerEnvelope is the wire shape the model must produce. It is mapped
// to models.ClassificationResult only after validation succeeds.
type routerEnvelope struct {
	Intents               []envelopeIntent `json:"intents"`
	NeedsClarification    bool             `json:"needsClarification"`
	ClarificationQuestion *string          `json:"clarificationQuestion"`
}

type envelopeIntent struct {
	Type         string                 `json:"type"         validate:"required"`
	Action       string                 `json:"action"       validate:"required,oneof=list create update delete search get unknown"`
	Parameters   map[string]interface{} `json:"parameters"`
	OriginalText string                 `json:"originalText" validate:"required"`
}

// IntentSchema is the validation schema derived from an orchestrator
// configuration. Built once per configuration and safe for concurrent use.
type IntentSchema struct {
	allowedTypes map[string]bool
	typeValues   []string

	// FunctionDef is the provider-facing JSON Schema, expressed as an
	// OpenAI-style function definition.
	FunctionDef *llms.FunctionDefinition
}

// BuildIntentSchema derives the validation schema from the orchestrator
// configuration: allowed intent types are the tool names plus the system
// intents.
func BuildIntentSchema(orch *models.OrchestratorConfig) *IntentSchema {
	typeValues := orch.IntentTypes()
	allowedTypes := make(map[string]bool, len(typeValues))
	for _, t := range typeValues {
		allowedTypes[t] = true
	}

	return &IntentSchema{
		allowedTypes: allowedTypes,
		typeValues:   typeValues,
		FunctionDef: &llms.FunctionDefinition{
			Name:        StructuredOutputName,
			Description: "Record the intents classified from the user's message.",
			Parameters:  buildEnvelopeJSONSchema(typeValues),
		},
	}
}

// AllowedTypes returns the allowed intent type values in configuration order.
func (s *IntentSchema) AllowedTypes() []string {
	return s.typeValues
}

// ParseAndValidate parses a candidate JSON document and validates it
// against the schema. Any failure yields an error; the caller treats it
// as a failed attempt.
func (s *IntentSchema) ParseAndValidate(raw string) (*routerEnvelope, error) {
	var env routerEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("envelope is not valid JSON: %w", err)
	}
	if err := s.validateEnvelope(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (s *IntentSchema) validateEnvelope(env *routerEnvelope) error {
	// The intents key must be present; an empty array is valid.
	if env.Intents == nil {
		return fmt.Errorf("envelope is missing the intents array")
	}

	for i := range env.Intents {
		intent := &env.Intents[i]
		if err := validate.Struct(intent); err != nil {
			return fmt.Errorf("intent %d failed validation: %w", i, err)
		}
		if !s.allowedTypes[intent.Type] {
			return fmt.Errorf(
				"intent %d has type %q, not one of the configured intent types",
				i,
				intent.Type,
			)
		}
	}

	if env.NeedsClarification &&
		(env.ClarificationQuestion == nil || *env.ClarificationQuestion == "") {
		return fmt.Errorf("needsClarification is set without a clarificationQuestion")
	}

	return nil
}

// buildEnvelopeJSONSchema constructs the JSON Schema for the envelope.
// The type enum is injected from the runtime catalog, which is why this
// schema is assembled by hand rather than reflected from a Go type.
func buildEnvelopeJSONSchema(typeValues []string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"intents": map[string]interface{}{
				"type":        "array",
				"description": "All intents present in the user's message. May be empty.",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"type": map[string]interface{}{
							"type": "string",
							"enum": typeValues,
						},
						"action": map[string]interface{}{
							"type": "string",
							"enum": intentActionValues,
						},
						"parameters": map[string]interface{}{
							"type":                 "object",
							"additionalProperties": true,
						},
						"originalText": map[string]interface{}{
							"type":        "string",
							"description": "The fragment of the message that motivated this intent.",
						},
					},
					"required": []string{"type", "action", "originalText"},
				},
			},
			"needsClarification": map[string]interface{}{
				"type": "boolean",
			},
			"clarificationQuestion": map[string]interface{}{
				"type":        []string{"string", "null"},
				"description": "Question to ask the user, in the user's language.",
			},
		},
		"required": []string{"intents", "needsClarification"},
	}
}
