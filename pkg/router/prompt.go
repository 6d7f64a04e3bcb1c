package router

import (
	"fmt"
	"strings"

	"github.com/NextSpark-js/nextspark-sub000/internal"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"
)

const routerPromptTemplate = `You are the intent router of a conversational assistant. Classify the user's latest message into zero or more intents and respond with a single JSON object of the shape
{"intents": [{"type": string, "action": string, "parameters": object, "originalText": string}], "needsClarification": boolean, "clarificationQuestion": string or null}

Available intent types:
{{- range .IntentTypes}}
- {{.Name}}: {{.Description}}
{{- end}}

The action value is one of: list, create, update, delete, search, get, unknown.

Rules:
- Extract ALL intents present in the message. A single message may contain several.
- Be specific when filling parameters. Only include values the user actually stated.
- Set originalText to the fragment of the message that motivated the intent.
- Use needsClarification sparingly, only when the message cannot be classified at all.
- When asking for clarification, phrase clarificationQuestion in the user's language.

{{.Examples}}{{if .Extras}}

{{.Extras}}{{end}}`

const greetingExample = `User: "Hello!"
{"intents": [{"type": "greeting", "action": "unknown", "parameters": {}, "originalText": "Hello!"}], "needsClarification": false, "clarificationQuestion": null}`

// RouterPromptTemplateData carries the catalog-derived sections of the
// router system prompt.
type RouterPromptTemplateData struct {
	IntentTypes []PromptIntentType
	Examples    string
	Extras      string
}

type PromptIntentType struct {
	Name        string
	Description string
}

// BuildRouterPrompt derives the system prompt for a configuration: the
// intent type list with descriptions, the fixed rule set, worked examples
// and any caller-supplied extras appended verbatim. Built once per
// configuration and reused for every classification call.
func BuildRouterPrompt(orch *models.OrchestratorConfig) (string, error) {
	data := RouterPromptTemplateData{
		IntentTypes: promptIntentTypes(orch),
		Examples:    promptExamples(orch),
		Extras:      strings.TrimSpace(orch.PromptExtras),
	}

	return internal.ParsePrompt(routerPromptTemplate, data)
}

func promptIntentTypes(orch *models.OrchestratorConfig) []PromptIntentType {
	types := make([]PromptIntentType, 0, len(orch.Tools)+2)
	for _, tool := range orch.Tools {
		types = append(types, PromptIntentType{
			Name:        tool.Name,
			Description: tool.Description,
		})
	}
	for _, name := range orch.SystemIntentsOrDefault() {
		types = append(types, PromptIntentType{
			Name:        name,
			Description: systemIntentDescription(name),
		})
	}
	return types
}

func systemIntentDescription(name string) string {
	switch name {
	case "greeting":
		return "the user is greeting the assistant or making small talk"
	case "clarification":
		return "the user is answering a clarification question from the assistant"
	default:
		return "system intent"
	}
}

// promptExamples assembles the worked examples: one per tool that ships
// example parameters, a combined example when at least two tools are
// configured, and the fixed greeting example.
func promptExamples(orch *models.OrchestratorConfig) string {
	var sb strings.Builder
	sb.WriteString("Examples:\n")

	for _, tool := range orch.Tools {
		if tool.ExampleParameters == "" {
			continue
		}
		sb.WriteString(toolExample(tool))
		sb.WriteString("\n")
	}

	if len(orch.Tools) >= 2 {
		sb.WriteString(combinedExample(orch.Tools[0], orch.Tools[1]))
		sb.WriteString("\n")
	}

	sb.WriteString(greetingExample)
	return sb.String()
}

func toolExample(tool models.Tool) string {
	return fmt.Sprintf(
		`User: "Show me my %s items"
{"intents": [{"type": %q, "action": "list", "parameters": {%s}, "originalText": "Show me my %s items"}], "needsClarification": false, "clarificationQuestion": null}
`,
		tool.Name, tool.Name, tool.ExampleParameters, tool.Name,
	)
}

func combinedExample(first, second models.Tool) string {
	return fmt.Sprintf(
		`User: "Show my %s items and find %s data"
{"intents": [{"type": %q, "action": "list", "parameters": {}, "originalText": "Show my %s items"}, {"type": %q, "action": "search", "parameters": {}, "originalText": "find %s data"}], "needsClarification": false, "clarificationQuestion": null}
`,
		first.Name, second.Name, first.Name, first.Name, second.Name, second.Name,
	)
}
