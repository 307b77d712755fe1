package commands

import (
	"context"
	"testing"

	"varia/internal/domain"
)

const rootSnapshot = `{"layers":[{"id":"bg","fill":"white"}],"canvas":{"width":800,"height":600}}`
const nextSnapshot = `{"layers":[{"id":"bg","fill":"black"}],"canvas":{"width":800,"height":600}}`

func initializedGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	if _, err := NewInitCommand(g, []byte(rootSnapshot), "start").Execute(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return g
}

func TestInitCommand_CreatesRoot(t *testing.T) {
	g := domain.NewGraph()
	result, err := NewInitCommand(g, []byte(rootSnapshot), "start").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Root == nil || result.Root.ID == "" {
		t.Fatal("expected a root node")
	}
	if result.Root.Metadata.Description != "start" {
		t.Errorf("description = %q, want start", result.Root.Metadata.Description)
	}
	if !g.Initialized() {
		t.Error("graph should be initialized")
	}
}

func TestInitCommand_Validate(t *testing.T) {
	g := domain.NewGraph()
	if _, err := NewInitCommand(g, nil, "").Execute(context.Background()); err == nil {
		t.Error("expected validation error for empty snapshot")
	}
	if _, err := NewInitCommand(g, []byte("not json"), "").Execute(context.Background()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestCommitCommand_UserEdit(t *testing.T) {
	g := initializedGraph(t)

	result, err := NewCommitCommand(g, []byte(nextSnapshot), "", "darker bg").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Node.Metadata.Source != domain.SourceUser {
		t.Errorf("source = %s, want user", result.Node.Metadata.Source)
	}
	if result.Node.ParentID != g.RootNode().ID {
		t.Error("commit should attach under the current node")
	}
	if g.CurrentNode().ID != result.Node.ID {
		t.Error("commit should become current")
	}
}

func TestCommitCommand_AIVariation(t *testing.T) {
	g := initializedGraph(t)

	cmd := NewAICommitCommand(g, []byte(nextSnapshot), "", "bolder", "make it bolder", 0.85)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	meta := result.Node.Metadata
	if meta.Source != domain.SourceAI {
		t.Errorf("source = %s, want ai", meta.Source)
	}
	if meta.Confidence != 0.85 || meta.AIPrompt != "make it bolder" {
		t.Errorf("AI metadata not carried: %+v", meta)
	}
}

func TestCommitCommand_RequiresInit(t *testing.T) {
	g := domain.NewGraph()
	if _, err := NewCommitCommand(g, []byte(nextSnapshot), "", "").Execute(context.Background()); err == nil {
		t.Error("expected validation error before init")
	}
}

func TestCommitCommand_UnknownParent(t *testing.T) {
	g := initializedGraph(t)
	if _, err := NewCommitCommand(g, []byte(nextSnapshot), "n-missing", "").Execute(context.Background()); err == nil {
		t.Error("expected error for unknown parent")
	}
}
