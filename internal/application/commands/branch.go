package commands

import (
	"context"
	"fmt"

	"varia/internal/application"
	"varia/internal/domain"
)

// CreateBranchResult contains the result of creating a branch
type CreateBranchResult struct {
	Branch  *domain.Branch
	Message string
}

// CreateBranchCommand labels a new branch over an existing node
type CreateBranchCommand struct {
	graph      *domain.Graph
	Name       string
	BaseNodeID string // empty means the current node
	Color      string
}

// NewCreateBranchCommand creates a new CreateBranchCommand
func NewCreateBranchCommand(graph *domain.Graph, name, baseNodeID, color string) *CreateBranchCommand {
	return &CreateBranchCommand{
		graph:      graph,
		Name:       name,
		BaseNodeID: baseNodeID,
		Color:      color,
	}
}

// Validate checks if the branch creation is valid
func (c *CreateBranchCommand) Validate() error {
	if c.Name == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "branch name is required",
		}
	}
	return nil
}

// Execute runs the create branch command
func (c *CreateBranchCommand) Execute(ctx context.Context) (*CreateBranchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	branch, err := c.graph.CreateBranch(c.Name, c.BaseNodeID, domain.BranchMetadata{Color: c.Color})
	if err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	return &CreateBranchResult{
		Branch:  branch,
		Message: fmt.Sprintf("Created branch %s at %s", branch.Name, branch.BaseNodeID),
	}, nil
}

// SwitchBranchCommand activates a branch by name and moves to its tip
type SwitchBranchCommand struct {
	graph *domain.Graph
	Name  string
}

// NewSwitchBranchCommand creates a new SwitchBranchCommand
func NewSwitchBranchCommand(graph *domain.Graph, name string) *SwitchBranchCommand {
	return &SwitchBranchCommand{graph: graph, Name: name}
}

// Validate checks if the switch operation is valid
func (c *SwitchBranchCommand) Validate() error {
	if c.Name == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "branch name is required",
		}
	}
	return nil
}

// Execute runs the switch branch command. Boundary outcomes (unknown
// branch) come back in the NavigationResult, not as an error.
func (c *SwitchBranchCommand) Execute(ctx context.Context) (domain.NavigationResult, error) {
	if err := c.Validate(); err != nil {
		return domain.NavigationResult{}, err
	}

	branch, ok := c.graph.BranchByName(c.Name)
	if !ok {
		return domain.NavigationResult{Reason: "branch not found"}, nil
	}
	return c.graph.SwitchBranch(branch.ID), nil
}
