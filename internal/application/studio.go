package application

import (
	"fmt"

	"varia/internal/domain"
	"varia/internal/ports"
)

// Studio binds a named history graph to its archive. Hosts (CLI, MCP, TUI)
// load once at startup, mutate through the graph, and save after each
// mutating operation.
type Studio struct {
	Name    string
	Graph   *domain.Graph
	Archive ports.StudioArchive
}

// NewStudio constructs the graph with its prune sink wired to the archive's
// cold storage, so capacity eviction moves nodes to disk instead of
// destroying them. maxHistory <= 0 uses the domain default.
func NewStudio(name string, archive ports.StudioArchive, maxHistory int) *Studio {
	s := &Studio{Name: name, Archive: archive}
	s.Graph = domain.NewGraph(
		domain.WithMaxHistorySize(maxHistory),
		domain.WithPruneSink(func(nodes []*domain.HistoryNode) {
			// Best effort: a cold-storage failure must not block the edit
			// that triggered pruning.
			_ = archive.ArchivePruned(name, nodes)
		}),
	)
	return s
}

// Load restores the persisted graph if the studio has one.
func (s *Studio) Load() error {
	exp, err := s.Archive.LoadGraph(s.Name)
	if err != nil {
		return fmt.Errorf("failed to load studio %s: %w", s.Name, err)
	}
	if exp == nil {
		return nil
	}
	return s.Graph.Import(exp)
}

// Save persists the current graph. A no-op before Initialize.
func (s *Studio) Save() error {
	if !s.Graph.Initialized() {
		return nil
	}
	exp, err := s.Graph.Export()
	if err != nil {
		return err
	}
	return s.Archive.SaveGraph(s.Name, exp)
}
