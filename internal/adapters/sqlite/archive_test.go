package sqlite

import (
	"path/filepath"
	"testing"

	"varia/internal/domain"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a := NewArchive()
	if err := a.Open(filepath.Join(t.TempDir(), "archive.db")); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleExport(t *testing.T) (*domain.Graph, *domain.HistoryExport) {
	t.Helper()
	g := domain.NewGraph()
	if _, err := g.Initialize(domain.Snapshot{"layers": []any{}}, domain.NodeMetadata{Description: "root"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := g.AddNode(domain.Snapshot{"layers": []any{map[string]any{"id": "l1"}}}, "", domain.NodeMetadata{}); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	exp, err := g.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return g, exp
}

func TestArchive_SaveAndLoadGraph(t *testing.T) {
	a := openTestArchive(t)
	g, exp := sampleExport(t)

	if err := a.SaveGraph("default", exp); err != nil {
		t.Fatalf("SaveGraph failed: %v", err)
	}

	loaded, err := a.LoadGraph("default")
	if err != nil {
		t.Fatalf("LoadGraph failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a stored export")
	}
	if len(loaded.Nodes) != g.NodeCount() {
		t.Errorf("loaded %d nodes, want %d", len(loaded.Nodes), g.NodeCount())
	}

	restored := domain.NewGraph()
	if err := restored.Import(loaded); err != nil {
		t.Fatalf("restored export failed validation: %v", err)
	}
	if restored.CurrentNode().ID != g.CurrentNode().ID {
		t.Error("current pointer lost through the archive")
	}
}

func TestArchive_LoadGraph_MissingStudio(t *testing.T) {
	a := openTestArchive(t)
	loaded, err := a.LoadGraph("nope")
	if err != nil {
		t.Fatalf("LoadGraph failed: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for an unknown studio")
	}
}

func TestArchive_SaveGraph_ReplacesPrior(t *testing.T) {
	a := openTestArchive(t)
	_, exp := sampleExport(t)

	if err := a.SaveGraph("default", exp); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	g2 := domain.NewGraph()
	g2.Initialize(domain.Snapshot{"layers": []any{}}, domain.NodeMetadata{})
	exp2, _ := g2.Export()
	if err := a.SaveGraph("default", exp2); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := a.LoadGraph("default")
	if err != nil {
		t.Fatalf("LoadGraph failed: %v", err)
	}
	if len(loaded.Nodes) != 1 {
		t.Errorf("loaded %d nodes, want the replacing export's 1", len(loaded.Nodes))
	}
}

func TestArchive_StudiosAreIsolated(t *testing.T) {
	a := openTestArchive(t)
	_, exp := sampleExport(t)

	if err := a.SaveGraph("alpha", exp); err != nil {
		t.Fatalf("SaveGraph failed: %v", err)
	}
	loaded, err := a.LoadGraph("beta")
	if err != nil {
		t.Fatalf("LoadGraph failed: %v", err)
	}
	if loaded != nil {
		t.Error("studio beta should be empty")
	}
}

func TestArchive_PrunedColdStorage(t *testing.T) {
	a := openTestArchive(t)

	nodes := []*domain.HistoryNode{
		{ID: "n-old1", BranchName: "main", Snapshot: domain.Snapshot{"layers": []any{}}},
		{ID: "n-old2", BranchName: "main", Snapshot: domain.Snapshot{"layers": []any{}}},
	}
	if err := a.ArchivePruned("default", nodes); err != nil {
		t.Fatalf("ArchivePruned failed: %v", err)
	}

	stored, err := a.PrunedNodes("default")
	if err != nil {
		t.Fatalf("PrunedNodes failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d nodes, want 2", len(stored))
	}
	if stored[0].ID != "n-old1" || stored[1].ID != "n-old2" {
		t.Errorf("order = %s, %s", stored[0].ID, stored[1].ID)
	}

	// Archiving the same node again must not duplicate it.
	if err := a.ArchivePruned("default", nodes[:1]); err != nil {
		t.Fatalf("re-archive failed: %v", err)
	}
	stored, _ = a.PrunedNodes("default")
	if len(stored) != 2 {
		t.Errorf("duplicate cold-storage rows: %d", len(stored))
	}
}

func TestArchive_ArchivePrunedEmptyIsNoop(t *testing.T) {
	a := openTestArchive(t)
	if err := a.ArchivePruned("default", nil); err != nil {
		t.Errorf("empty archive call failed: %v", err)
	}
}
