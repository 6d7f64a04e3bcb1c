package models

import (
	"context"

	"github.com/NextSpark-js/nextspark-sub000/config"
)

// IntentClassifier classifies a message into routed intents.
type IntentClassifier interface {
	Classify(ctx context.Context, req *ClassifyRequest) (*ClassificationResult, error)
}

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LLM          LLMRegistry
	Tracer       Tracer
	Router       IntentClassifier
	Orchestrator *OrchestratorConfig
	Config       *config.Config
}
