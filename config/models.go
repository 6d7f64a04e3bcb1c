package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM    LLM          `mapstructure:"llm"`
	Router RouterConfig `mapstructure:"router"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Trace  TraceConfig  `mapstructure:"trace"`
}

type LLM struct {
	Service     string  `mapstructure:"service"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	// OpenAIAPIKey is loaded from ENV not config file.
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	OpenAIEndpoint string `mapstructure:"openai_endpoint"`
	OpenAIOrgID    string `mapstructure:"openai_org_id"`
	// AnthropicAPIKey is loaded from ENV not config file.
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
}

// RouterConfig configures the intent router: the tool catalog the router
// classifies against and the retry behavior of a classification call.
type RouterConfig struct {
	MaxRetries    int          `mapstructure:"max_retries"`
	RetryDelayMs  int          `mapstructure:"retry_delay_ms"`
	HistoryWindow int          `mapstructure:"history_window"`
	Debug         bool         `mapstructure:"debug"`
	Tools         []ToolConfig `mapstructure:"tools" validate:"dive"`
	SystemIntents []string     `mapstructure:"system_intents"`
	PromptExtras  string       `mapstructure:"prompt_extras"`
}

type ToolConfig struct {
	Name              string `mapstructure:"name"        validate:"required"`
	Description       string `mapstructure:"description" validate:"required"`
	ExampleParameters string `mapstructure:"example_parameters"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TraceConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}
