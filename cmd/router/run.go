package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/llms"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"
	"github.com/NextSpark-js/nextspark-sub000/pkg/router"
	"github.com/NextSpark-js/nextspark-sub000/pkg/server"
	"github.com/NextSpark-js/nextspark-sub000/pkg/tracing"
)

const shutdownTimeout = 5 * time.Second

// run is the entrypoint for the intent router server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring the intent router: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting intent router version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	srv := server.Create(appState)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV:
// the LLM client registry, the tracer, the orchestrator catalog and the
// intent router wired on top of them.
func NewAppState(cfg *config.Config) *models.AppState {
	ctx := context.Background()

	registry, err := llms.NewRegistry(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM clients: %s", err)
	}

	tracer := initializeTracer(ctx, cfg)
	orch := orchestratorFromConfig(cfg)

	intentRouter, err := router.NewIntentRouter(cfg, orch, registry, tracer)
	if err != nil {
		log.Fatalf("Failed to initialize intent router: %s", err)
	}

	return &models.AppState{
		LLM:          registry,
		Tracer:       tracer,
		Router:       intentRouter,
		Orchestrator: orch,
		Config:       cfg,
	}
}

// classifyOnce runs a single classification from the CLI and prints the
// result envelope as indented JSON.
func classifyOnce(input string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error configuring the intent router: %w", err)
	}
	config.SetLogLevel(cfg)

	appState := NewAppState(cfg)

	result, err := appState.Router.Classify(
		context.Background(),
		&models.ClassifyRequest{Input: input},
	)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Failed to dump config: %s", err)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}

// initializeTracer configures the tracer based on the config file / ENV.
// With tracing disabled the router gets a no-op tracer.
func initializeTracer(ctx context.Context, cfg *config.Config) models.Tracer {
	if !cfg.Trace.Enabled {
		return tracing.NewNoopTracer()
	}

	shutdown, err := tracing.InitTracerProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %s", err)
	}
	setupSignalHandler(shutdown)

	log.Info("Tracing enabled, exporting to: ", cfg.Trace.Endpoint)
	return tracing.NewOtelTracer()
}

func orchestratorFromConfig(cfg *config.Config) *models.OrchestratorConfig {
	tools := make([]models.Tool, 0, len(cfg.Router.Tools))
	for _, tool := range cfg.Router.Tools {
		tools = append(tools, models.Tool{
			Name:              tool.Name,
			Description:       tool.Description,
			ExampleParameters: tool.ExampleParameters,
		})
	}
	return &models.OrchestratorConfig{
		Tools:         tools,
		SystemIntents: cfg.Router.SystemIntents,
		PromptExtras:  cfg.Router.PromptExtras,
	}
}

// setupSignalHandler flushes pending trace spans on termination
func setupSignalHandler(shutdown func(context.Context) error) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Errorf("Error shutting down tracing: %v", err)
		}
		os.Exit(0)
	}()
}
