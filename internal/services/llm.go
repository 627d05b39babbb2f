package services

import (
	"context"
	"regexp"
)

// DegradedResponse is the safe default narrative returned to the player
// when the narrator model cannot be reached. Generation failures must
// never abort the session.
const DegradedResponse = "The world seems to flicker for a moment, as if the story has lost its thread. (Error communicating with the AI model. Please ensure it is running.)"

// LLMService is the interface to the generative model that produces all
// narrative content. Calls block; they are the only suspension points in
// the engine.
type LLMService interface {
	// InitModel prepares the named model for use, pulling it if the
	// provider supports that.
	InitModel(ctx context.Context, modelName string) error

	// ListModels returns the models available from the provider.
	ListModels(ctx context.Context) ([]string, error)

	// Generate produces narrative text for a prompt and system
	// instructions. Implementations strip any model "thinking" block
	// before returning.
	Generate(ctx context.Context, prompt string, system string) (string, error)
}

// Reasoning models wrap their deliberation in a think block that must
// never reach the directive interpreter or the player.
var thinkingPattern = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

// StripThinking removes think blocks from model output.
func StripThinking(s string) string {
	return thinkingPattern.ReplaceAllString(s, "")
}
