package commands

import (
	"context"
	"testing"
)

func TestCreateBranchCommand(t *testing.T) {
	g := initializedGraph(t)

	result, err := NewCreateBranchCommand(g, "experiment", "", "#ff8800").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Branch.Name != "experiment" {
		t.Errorf("name = %s", result.Branch.Name)
	}
	if result.Branch.Metadata.Color != "#ff8800" {
		t.Errorf("color = %s", result.Branch.Metadata.Color)
	}
	if g.CurrentBranch().Name != "main" {
		t.Error("creating a branch must not switch")
	}
}

func TestCreateBranchCommand_Validate(t *testing.T) {
	g := initializedGraph(t)
	if _, err := NewCreateBranchCommand(g, "", "", "").Execute(context.Background()); err == nil {
		t.Error("expected validation error for empty name")
	}
	if _, err := NewCreateBranchCommand(g, "main", "", "").Execute(context.Background()); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestSwitchBranchCommand(t *testing.T) {
	g := initializedGraph(t)
	if _, err := NewCreateBranchCommand(g, "experiment", "", "").Execute(context.Background()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	res, err := NewSwitchBranchCommand(g, "experiment").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("switch refused: %s", res.Reason)
	}
	if g.CurrentBranch().Name != "experiment" {
		t.Error("active branch did not change")
	}
}

func TestSwitchBranchCommand_UnknownIsResultNotError(t *testing.T) {
	g := initializedGraph(t)
	res, err := NewSwitchBranchCommand(g, "nope").Execute(context.Background())
	if err != nil {
		t.Fatalf("unknown branch should not be an error: %v", err)
	}
	if res.Success {
		t.Error("expected a refused switch")
	}
}
