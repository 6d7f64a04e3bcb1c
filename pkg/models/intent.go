package models

// IntentAction is the operation the user wants to perform against the
// routed capability.
type IntentAction string

const (
	ActionList    IntentAction = "list"
	ActionCreate  IntentAction = "create"
	ActionUpdate  IntentAction = "update"
	ActionDelete  IntentAction = "delete"
	ActionSearch  IntentAction = "search"
	ActionGet     IntentAction = "get"
	ActionUnknown IntentAction = "unknown"
)

var ValidIntentActions = map[IntentAction]bool{
	ActionList:    true,
	ActionCreate:  true,
	ActionUpdate:  true,
	ActionDelete:  true,
	ActionSearch:  true,
	ActionGet:     true,
	ActionUnknown: true,
}

// Intent is one extracted unit of user intent. Type is always one of the
// tool names or system intents configured on the orchestrator.
type Intent struct {
	Type         string                 `json:"type"`
	Action       IntentAction           `json:"action"`
	Parameters   map[string]interface{} `json:"parameters,omitempty"`
	OriginalText string                 `json:"originalText"`
}

// ClassificationResult is the output envelope of a classification call.
// A single message may yield multiple intents. ClarificationQuestion is
// only set when NeedsClarification is true. Error carries the internal
// failure reason when the router degraded to the clarification fallback.
type ClassificationResult struct {
	Intents               []Intent `json:"intents"`
	NeedsClarification    bool     `json:"needsClarification"`
	ClarificationQuestion string   `json:"clarificationQuestion,omitempty"`
	Error                 string   `json:"error,omitempty"`
}

// ModelOverride selects the provider/model/temperature for a single
// classification call. Absent fields fall back to the configured defaults.
type ModelOverride struct {
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ClassifyRequest is the input to a classification call.
type ClassifyRequest struct {
	Input     string          `json:"input"`
	History   []Message       `json:"conversationHistory,omitempty"`
	Principal *TracePrincipal `json:"traceContext,omitempty"`
	Model     *ModelOverride  `json:"modelConfig,omitempty"`
}
