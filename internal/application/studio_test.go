package application

import (
	"errors"
	"fmt"
	"testing"

	"varia/internal/domain"
	"varia/internal/ports"
)

// memArchive is an in-memory StudioArchive for tests.
type memArchive struct {
	graphs  map[string]*domain.HistoryExport
	pruned  map[string][]*domain.HistoryNode
	loadErr error
}

func newMemArchive() *memArchive {
	return &memArchive{
		graphs: map[string]*domain.HistoryExport{},
		pruned: map[string][]*domain.HistoryNode{},
	}
}

func (m *memArchive) SaveGraph(studio string, exp *domain.HistoryExport) error {
	m.graphs[studio] = exp
	return nil
}

func (m *memArchive) LoadGraph(studio string) (*domain.HistoryExport, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.graphs[studio], nil
}

func (m *memArchive) ArchivePruned(studio string, nodes []*domain.HistoryNode) error {
	m.pruned[studio] = append(m.pruned[studio], nodes...)
	return nil
}

func (m *memArchive) PrunedNodes(studio string) ([]*domain.HistoryNode, error) {
	return m.pruned[studio], nil
}

func (m *memArchive) Close() error { return nil }

var _ ports.StudioArchive = (*memArchive)(nil)

func TestStudio_SaveThenLoad(t *testing.T) {
	archive := newMemArchive()

	first := NewStudio("default", archive, 0)
	if _, err := first.Graph.Initialize(domain.Snapshot{"layers": []any{}}, domain.NodeMetadata{}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	first.Graph.AddNode(domain.Snapshot{"layers": []any{}}, "", domain.NodeMetadata{Description: "edit"})
	if err := first.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := NewStudio("default", archive, 0)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if second.Graph.NodeCount() != first.Graph.NodeCount() {
		t.Errorf("restored %d nodes, want %d", second.Graph.NodeCount(), first.Graph.NodeCount())
	}
	if second.Graph.CurrentNode().ID != first.Graph.CurrentNode().ID {
		t.Error("current pointer not restored")
	}
}

func TestStudio_LoadEmptyStudio(t *testing.T) {
	s := NewStudio("fresh", newMemArchive(), 0)
	if err := s.Load(); err != nil {
		t.Fatalf("Load of an empty studio failed: %v", err)
	}
	if s.Graph.Initialized() {
		t.Error("empty studio should stay uninitialized")
	}
}

func TestStudio_LoadWrapsArchiveError(t *testing.T) {
	archive := newMemArchive()
	archive.loadErr = errors.New("disk on fire")
	s := NewStudio("default", archive, 0)
	if err := s.Load(); err == nil {
		t.Fatal("expected load error")
	}
}

func TestStudio_SaveBeforeInitIsNoop(t *testing.T) {
	archive := newMemArchive()
	s := NewStudio("default", archive, 0)
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(archive.graphs) != 0 {
		t.Error("uninitialized save wrote to the archive")
	}
}

func TestStudio_PruneSinkWiredToColdStorage(t *testing.T) {
	archive := newMemArchive()
	s := NewStudio("default", archive, 10)
	s.Graph.Initialize(domain.Snapshot{"layers": []any{}}, domain.NodeMetadata{})

	for i := 0; i < 30; i++ {
		if _, err := s.Graph.AddNode(domain.Snapshot{"layers": []any{}}, "", domain.NodeMetadata{Description: fmt.Sprintf("n%d", i)}); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}

	stored, _ := archive.PrunedNodes("default")
	if len(stored) == 0 {
		t.Fatal("pruned nodes never reached cold storage")
	}
	for _, n := range stored {
		if _, ok := s.Graph.Node(n.ID); ok {
			t.Errorf("cold-stored node %s still live", n.ID)
		}
	}
}
