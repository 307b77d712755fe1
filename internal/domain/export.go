package domain

import (
	"encoding/json"
	"fmt"
)

// ExportVersion tags serialized history payloads. Import refuses payloads
// with a different tag.
const ExportVersion = "1"

// HistoryExport is the full-graph serialization format.
type HistoryExport struct {
	Version         string                  `json:"version"`
	Nodes           map[string]*HistoryNode `json:"nodes"`
	Branches        map[string]*Branch      `json:"branches"`
	CurrentNodeID   string                  `json:"currentNodeId"`
	CurrentBranchID string                  `json:"currentBranchId"`
	RootNodeID      string                  `json:"rootNodeId"`
}

// Export returns a deep copy of the whole graph, safe to hold across later
// mutations.
func (g *Graph) Export() (*HistoryExport, error) {
	if !g.Initialized() {
		return nil, ErrNotInitialized
	}

	nodes := make(map[string]*HistoryNode, len(g.nodes))
	for id, n := range g.nodes {
		nodes[id] = cloneNode(n)
	}
	branches := make(map[string]*Branch, len(g.branches))
	for id, b := range g.branches {
		branches[id] = cloneBranch(b)
	}

	return &HistoryExport{
		Version:         ExportVersion,
		Nodes:           nodes,
		Branches:        branches,
		CurrentNodeID:   g.currentNodeID,
		CurrentBranchID: g.currentBranchID,
		RootNodeID:      g.rootNodeID,
	}, nil
}

// ExportJSON serializes the graph with its version tag.
func (g *Graph) ExportJSON() ([]byte, error) {
	exp, err := g.Export()
	if err != nil {
		return nil, err
	}
	return json.Marshal(exp)
}

// ImportJSON replaces the in-memory graph with the payload. The import is
// atomic: the payload is parsed and validated in full first, and on any
// structural or version error the existing graph is left untouched.
func (g *Graph) ImportJSON(data []byte) error {
	var exp HistoryExport
	if err := json.Unmarshal(data, &exp); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	return g.Import(&exp)
}

// Import replaces the in-memory graph with an already-parsed export. Same
// atomicity contract as ImportJSON.
func (g *Graph) Import(exp *HistoryExport) error {
	if exp == nil {
		return fmt.Errorf("%w: empty payload", ErrImportFailed)
	}
	if exp.Version != ExportVersion {
		return fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, exp.Version, ExportVersion)
	}
	if err := validateExport(exp); err != nil {
		return err
	}

	nodes := make(map[string]*HistoryNode, len(exp.Nodes))
	for id, n := range exp.Nodes {
		nodes[id] = cloneNode(n)
	}
	branches := make(map[string]*Branch, len(exp.Branches))
	for id, b := range exp.Branches {
		branches[id] = cloneBranch(b)
	}

	g.nodes = nodes
	g.branches = branches
	g.rootNodeID = exp.RootNodeID
	g.currentNodeID = exp.CurrentNodeID
	g.currentBranchID = exp.CurrentBranchID

	g.emitter.Emit(Event{Type: EventVariationChange, NodeID: g.currentNodeID, BranchID: g.currentBranchID})
	return nil
}

// validateExport checks referential integrity, acyclicity and resolvable
// current pointers before anything replaces the live graph.
func validateExport(exp *HistoryExport) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrImportFailed, fmt.Sprintf(format, args...))
	}

	if len(exp.Nodes) == 0 {
		return fail("no nodes")
	}
	root, ok := exp.Nodes[exp.RootNodeID]
	if !ok {
		return fail("root node %s missing", exp.RootNodeID)
	}
	if root.ParentID != "" {
		return fail("root node %s has a parent", exp.RootNodeID)
	}
	if _, ok := exp.Nodes[exp.CurrentNodeID]; !ok {
		return fail("current node %s missing", exp.CurrentNodeID)
	}
	if _, ok := exp.Branches[exp.CurrentBranchID]; !ok {
		return fail("current branch %s missing", exp.CurrentBranchID)
	}

	for id, n := range exp.Nodes {
		if n.ID != id {
			return fail("node key %s does not match id %s", id, n.ID)
		}
		if n.ParentID != "" {
			parent, ok := exp.Nodes[n.ParentID]
			if !ok {
				return fail("node %s references missing parent %s", id, n.ParentID)
			}
			if !containsID(parent.Children, id) {
				return fail("parent %s does not list child %s", n.ParentID, id)
			}
		} else if id != exp.RootNodeID {
			return fail("non-root node %s has no parent", id)
		}
		for _, childID := range n.Children {
			child, ok := exp.Nodes[childID]
			if !ok {
				return fail("node %s references missing child %s", id, childID)
			}
			if child.ParentID != id {
				return fail("child %s does not point back at %s", childID, id)
			}
		}

		// Acyclicity: the parent walk must reach the root within |nodes|
		// steps.
		steps := 0
		for cur := n; cur.ParentID != ""; cur = exp.Nodes[cur.ParentID] {
			steps++
			if steps > len(exp.Nodes) {
				return fail("cycle detected walking parents of %s", id)
			}
		}
	}

	for id, b := range exp.Branches {
		if b.ID != id {
			return fail("branch key %s does not match id %s", id, b.ID)
		}
		if _, ok := exp.Nodes[b.BaseNodeID]; !ok {
			return fail("branch %s references missing base %s", b.Name, b.BaseNodeID)
		}
		for _, nodeID := range b.Nodes {
			if _, ok := exp.Nodes[nodeID]; !ok {
				return fail("branch %s references missing node %s", b.Name, nodeID)
			}
		}
	}
	return nil
}

func cloneNode(n *HistoryNode) *HistoryNode {
	out := *n
	out.Snapshot = n.Snapshot.Clone()
	out.Children = append([]string(nil), n.Children...)
	return &out
}

func cloneBranch(b *Branch) *Branch {
	out := *b
	out.Nodes = append([]string(nil), b.Nodes...)
	return &out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
