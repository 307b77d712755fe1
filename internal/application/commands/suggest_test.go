package commands

import (
	"context"
	"errors"
	"testing"

	"varia/internal/domain"
	"varia/internal/ports"
)

type fakeAssistant struct {
	suggestion *ports.VariationSuggestion
	err        error
	available  bool
	sawPrompt  string
}

func (f *fakeAssistant) SuggestVariation(current domain.Snapshot, instruction string) (*ports.VariationSuggestion, error) {
	f.sawPrompt = instruction
	return f.suggestion, f.err
}

func (f *fakeAssistant) IsAvailable() bool { return f.available }

var _ ports.DesignAssistant = (*fakeAssistant)(nil)

func TestSuggestCommand_CommitsAIVariation(t *testing.T) {
	g := initializedGraph(t)
	assistant := &fakeAssistant{
		available: true,
		suggestion: &ports.VariationSuggestion{
			Snapshot:    domain.Snapshot{"layers": []any{map[string]any{"id": "bg"}}},
			Description: "warmer palette",
			Confidence:  0.7,
			Prompt:      "warm it up",
		},
	}

	result, err := NewSuggestCommand(g, assistant, "warm it up").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if assistant.sawPrompt != "warm it up" {
		t.Errorf("assistant received %q", assistant.sawPrompt)
	}
	if result.Node.Metadata.Source != domain.SourceAI {
		t.Errorf("source = %s, want ai", result.Node.Metadata.Source)
	}
	if result.Node.Metadata.Description != "warmer palette" {
		t.Errorf("description = %q", result.Node.Metadata.Description)
	}
	if result.Node.ParentID != g.RootNode().ID {
		t.Error("variation should attach under the request-time current node")
	}
}

func TestSuggestCommand_AssistantFailure(t *testing.T) {
	g := initializedGraph(t)
	assistant := &fakeAssistant{available: true, err: errors.New("claude exploded")}

	before := g.NodeCount()
	if _, err := NewSuggestCommand(g, assistant, "anything").Execute(context.Background()); err == nil {
		t.Fatal("expected assistant error")
	}
	if g.NodeCount() != before {
		t.Error("failed suggestion must not add nodes")
	}
}

func TestSuggestCommand_Validate(t *testing.T) {
	g := initializedGraph(t)
	unavailable := &fakeAssistant{available: false}
	if _, err := NewSuggestCommand(g, unavailable, "x").Execute(context.Background()); err == nil {
		t.Error("expected error when the assistant is unavailable")
	}
	available := &fakeAssistant{available: true}
	if _, err := NewSuggestCommand(g, available, "").Execute(context.Background()); err == nil {
		t.Error("expected error for empty instruction")
	}
}
