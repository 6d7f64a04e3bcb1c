package models

// DefaultSystemIntents are the intent types every orchestrator understands
// in addition to its tool catalog.
var DefaultSystemIntents = []string{"greeting", "clarification"}

// Tool is one routable capability: a unique name, a human-readable
// description and an optional example-parameters string used only to
// enrich the router prompt.
type Tool struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	ExampleParameters string `json:"exampleParameters,omitempty"`
}

// OrchestratorConfig is the tool catalog plus optional system intents and
// a free-text prompt suffix. Constructed once per deployment and read-only
// afterward.
type OrchestratorConfig struct {
	Tools         []Tool   `json:"tools"`
	SystemIntents []string `json:"systemIntents,omitempty"`
	PromptExtras  string   `json:"promptExtras,omitempty"`
}

// SystemIntentsOrDefault returns the configured system intents, falling
// back to DefaultSystemIntents when none are set.
func (c *OrchestratorConfig) SystemIntentsOrDefault() []string {
	if len(c.SystemIntents) == 0 {
		return DefaultSystemIntents
	}
	return c.SystemIntents
}

// ToolCatalogResponse is the payload of the tool catalog endpoint.
type ToolCatalogResponse struct {
	Tools         []Tool   `json:"tools"`
	SystemIntents []string `json:"systemIntents"`
}

// IntentTypes returns the full set of allowed intent type values:
// tool names followed by system intents, in configuration order.
func (c *OrchestratorConfig) IntentTypes() []string {
	types := make([]string, 0, len(c.Tools)+2)
	for _, tool := range c.Tools {
		types = append(types, tool.Name)
	}
	return append(types, c.SystemIntentsOrDefault()...)
}
