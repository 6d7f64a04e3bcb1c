package config

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
)

func TestJSONSchema(t *testing.T) {
	schemaJSON, err := JSONSchema()

	assert.NoError(t, err)
	assert.NotNil(t, schemaJSON)
	unmarshalledSchema := &jsonschema.Schema{}
	err = unmarshalledSchema.UnmarshalJSON(schemaJSON)
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Router: RouterConfig{
					Tools: []ToolConfig{
						{Name: "task", Description: "manage tasks"},
						{Name: "contact", Description: "manage contacts"},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "duplicate tool names",
			cfg: Config{
				Router: RouterConfig{
					Tools: []ToolConfig{
						{Name: "task", Description: "manage tasks"},
						{Name: "task", Description: "manage tasks again"},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "tool missing description",
			cfg: Config{
				Router: RouterConfig{
					Tools: []ToolConfig{
						{Name: "task"},
					},
				},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
