package services

import (
	"context"
	"testing"
)

func TestStripThinking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "think block at the start",
			input: "<think>Let me consider the scene.</think>\nYou enter the cave.",
			want:  "You enter the cave.",
		},
		{
			name:  "multiline think block",
			input: "<think>line one\nline two\n</think>The goblin snarls.",
			want:  "The goblin snarls.",
		},
		{
			name:  "multiple think blocks",
			input: "<think>a</think>First. <think>b</think>Second.",
			want:  "First. Second.",
		},
		{
			name:  "no think block",
			input: "Plain narration.",
			want:  "Plain narration.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripThinking(tt.input); got != tt.want {
				t.Errorf("StripThinking(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMockLLM_SequentialResponses(t *testing.T) {
	llm := NewMockLLM("first", "second")
	ctx := context.Background()

	for _, want := range []string{"first", "second", "second"} {
		got, err := llm.Generate(ctx, "prompt", "system")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}

	if len(llm.GenerateCalls) != 3 {
		t.Errorf("recorded %d calls, want 3", len(llm.GenerateCalls))
	}
	if llm.GenerateCalls[0].System != "system" {
		t.Errorf("recorded system = %q", llm.GenerateCalls[0].System)
	}
}

func TestAnthropicService_InitModel(t *testing.T) {
	svc := NewAnthropicService("", "claude-sonnet-4-20250514", nil)
	if err := svc.InitModel(context.Background(), ""); err == nil {
		t.Error("expected an error without an API key")
	}

	svc = NewAnthropicService("key", "claude-sonnet-4-20250514", nil)
	if err := svc.InitModel(context.Background(), "claude-opus-4-20250514"); err != nil {
		t.Fatalf("InitModel: %v", err)
	}
	models, err := svc.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 1 || models[0] != "claude-opus-4-20250514" {
		t.Errorf("models = %v", models)
	}
}
