package llms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/schema"
)

func TestFlattenToAnthropicPrompt(t *testing.T) {
	messages := []schema.ChatMessage{
		schema.SystemChatMessage{Content: "You classify intents."},
		schema.HumanChatMessage{Content: "Show me my tasks"},
		schema.AIChatMessage{Content: "Here are your tasks."},
		schema.HumanChatMessage{Content: "Thanks"},
	}

	prompt := flattenToAnthropicPrompt(messages)

	assert.Contains(t, prompt, "Human: You classify intents.")
	assert.Contains(t, prompt, "Human: Show me my tasks")
	assert.Contains(t, prompt, "Assistant: Here are your tasks.")
	assert.True(t, len(prompt) > 0)
	assert.Equal(t, "Assistant:", prompt[len(prompt)-len("Assistant:"):])
}
