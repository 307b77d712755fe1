package commands

import (
	"context"

	"varia/internal/application"
	"varia/internal/domain"
)

// DiffCommand compares the snapshots of two nodes
type DiffCommand struct {
	graph *domain.Graph
	AID   string
	BID   string
}

// NewDiffCommand creates a new DiffCommand
func NewDiffCommand(graph *domain.Graph, aID, bID string) *DiffCommand {
	return &DiffCommand{graph: graph, AID: aID, BID: bID}
}

// Validate checks if the diff operation is valid
func (c *DiffCommand) Validate() error {
	if c.AID == "" || c.BID == "" {
		return &application.ValidationError{
			Field:   "nodeID",
			Message: "two node IDs are required",
		}
	}
	return nil
}

// Execute runs the diff command
func (c *DiffCommand) Execute(ctx context.Context) (domain.DiffResult, error) {
	if err := c.Validate(); err != nil {
		return domain.DiffResult{}, err
	}
	return c.graph.CompareNodes(c.AID, c.BID)
}
