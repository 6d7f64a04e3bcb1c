package router

import (
	"strings"
	"testing"

	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRouterPrompt(t *testing.T) {
	orch := &models.OrchestratorConfig{
		Tools: []models.Tool{
			{
				Name:              "task",
				Description:       "manage tasks",
				ExampleParameters: `"status": "open"`,
			},
			{Name: "contact", Description: "manage contacts"},
		},
		PromptExtras: "Always prefer the task tool for anything about work items.",
	}

	prompt, err := BuildRouterPrompt(orch)
	require.NoError(t, err)

	assert.Contains(t, prompt, "- task: manage tasks")
	assert.Contains(t, prompt, "- contact: manage contacts")
	assert.Contains(t, prompt, "- greeting:")
	assert.Contains(t, prompt, "- clarification:")

	// worked example for the tool that ships example parameters
	assert.Contains(t, prompt, `"parameters": {"status": "open"}`)

	// combined example, since two tools are configured
	assert.Contains(t, prompt, `Show my task items and find contact data`)

	// fixed greeting example
	assert.Contains(t, prompt, `"type": "greeting"`)

	// extras appended verbatim
	assert.True(t, strings.HasSuffix(
		strings.TrimSpace(prompt),
		"Always prefer the task tool for anything about work items.",
	))
}

func TestBuildRouterPrompt_SingleTool(t *testing.T) {
	orch := &models.OrchestratorConfig{
		Tools: []models.Tool{{Name: "task", Description: "manage tasks"}},
	}

	prompt, err := BuildRouterPrompt(orch)
	require.NoError(t, err)

	// no combined example with a single tool
	assert.NotContains(t, prompt, "and find")
	// no per-tool example without example parameters
	assert.NotContains(t, prompt, `Show me my task items`)
	// greeting example is always present
	assert.Contains(t, prompt, `"type": "greeting"`)
}

func TestBuildRouterPrompt_ReusedAcrossCalls(t *testing.T) {
	orch := &models.OrchestratorConfig{
		Tools: []models.Tool{{Name: "task", Description: "manage tasks"}},
	}

	first, err := BuildRouterPrompt(orch)
	require.NoError(t, err)
	second, err := BuildRouterPrompt(orch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
