package domain

import (
	"fmt"
	"sort"
	"time"
)

// NavigationResult reports the outcome of a navigation operation. Boundary
// conditions (undo at root, redo without children, unknown target) are
// expected, frequent outcomes; they come back as Success=false with a
// Reason, never as errors.
type NavigationResult struct {
	Success bool         `json:"success"`
	Node    *HistoryNode `json:"node,omitempty"`
	Reason  string       `json:"reason,omitempty"`
}

// Graph owns the branching history DAG: every node lives in a single
// id-indexed map and nodes reference each other only by id. All mutation is
// synchronous and single-threaded by contract; an AddNode arriving from an
// asynchronous completion still runs as one atomic call on the caller's
// control flow, so no reader ever observes a half-updated graph.
type Graph struct {
	nodes           map[string]*HistoryNode
	branches        map[string]*Branch
	currentNodeID   string
	currentBranchID string
	rootNodeID      string

	policy      PrunePolicy
	pruneSink   func([]*HistoryNode)
	forkCounter int

	emitter Emitter
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithMaxHistorySize caps the node count enforced by the prune policy.
func WithMaxHistorySize(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.policy.MaxNodes = n
		}
	}
}

// WithPruneSink registers a sink that receives pruned nodes before they
// leave memory, letting callers move them to cold storage instead of losing
// them.
func WithPruneSink(fn func([]*HistoryNode)) GraphOption {
	return func(g *Graph) { g.pruneSink = fn }
}

// NewGraph constructs an empty graph. Call Initialize before anything else.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{policy: PrunePolicy{MaxNodes: DefaultMaxHistorySize}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Subscribe registers an event listener and returns its unsubscribe func.
func (g *Graph) Subscribe(fn Listener) func() {
	return g.emitter.Subscribe(fn)
}

// Initialized reports whether Initialize has produced a root.
func (g *Graph) Initialized() bool { return g.rootNodeID != "" }

// MaxHistorySize returns the enforced node cap.
func (g *Graph) MaxHistorySize() int { return g.policy.MaxNodes }

// Initialize resets any prior graph and creates the root node plus the main
// branch. The snapshot is deep-copied.
func (g *Graph) Initialize(snapshot Snapshot, meta NodeMetadata) (*HistoryNode, error) {
	if meta.Source == "" {
		meta.Source = SourceUser
	}

	root := &HistoryNode{
		ID:         newNodeID(),
		Snapshot:   snapshot.Clone(),
		Timestamp:  time.Now(),
		Metadata:   meta,
		BranchName: "main",
	}
	main := &Branch{
		ID:         newBranchID(),
		Name:       "main",
		BaseNodeID: root.ID,
		Nodes:      []string{root.ID},
		IsActive:   true,
		Metadata:   BranchMetadata{CreatedAt: root.Timestamp, Protected: true},
	}

	g.nodes = map[string]*HistoryNode{root.ID: root}
	g.branches = map[string]*Branch{main.ID: main}
	g.rootNodeID = root.ID
	g.currentNodeID = root.ID
	g.currentBranchID = main.ID
	g.forkCounter = 0

	g.emitter.Emit(Event{Type: EventVariationChange, NodeID: root.ID, BranchID: main.ID})
	return root, nil
}

// Reset tears the graph down. A later Initialize starts fresh; listeners
// stay registered.
func (g *Graph) Reset() {
	g.nodes = nil
	g.branches = nil
	g.rootNodeID = ""
	g.currentNodeID = ""
	g.currentBranchID = ""
	g.forkCounter = 0
}

// AddNode appends a new variation under parentID (the current node when
// empty). The snapshot is deep-copied, the parent's children list is
// updated, the new node becomes current, and it joins the branch owning the
// parent. When the parent is not that branch's tip (a committed edit, or an
// AI reply landing after the user navigated elsewhere) a fork branch based
// at the parent is created so every branch stays a contiguous chain. Runs
// the prune policy first when at capacity.
func (g *Graph) AddNode(snapshot Snapshot, parentID string, meta NodeMetadata) (*HistoryNode, error) {
	if !g.Initialized() {
		return nil, ErrNoParent
	}
	if parentID == "" {
		parentID = g.currentNodeID
	}
	if _, ok := g.nodes[parentID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}

	if g.policy.AtCapacity(len(g.nodes)) {
		g.prune(parentID)
	}

	if meta.Source == "" {
		meta.Source = SourceUser
	}

	branch := g.owningBranch(parentID)
	if branch == nil || branch.Tip() != parentID {
		branch = g.forkBranchAt(parentID)
	}

	parent := g.nodes[parentID]
	node := &HistoryNode{
		ID:         newNodeID(),
		ParentID:   parentID,
		Snapshot:   snapshot.Clone(),
		Timestamp:  time.Now(),
		Metadata:   meta,
		BranchName: branch.Name,
	}

	g.nodes[node.ID] = node
	parent.Children = append(parent.Children, node.ID)
	branch.Nodes = append(branch.Nodes, node.ID)
	g.activateBranch(branch.ID)
	g.currentNodeID = node.ID

	g.emitter.Emit(Event{Type: EventVariationChange, NodeID: node.ID, BranchID: branch.ID})
	return node, nil
}

// CreateBranch registers a named branch based at baseNodeID (the current
// node when empty). It does not change the current node or branch: a branch
// is only a label over an existing path until the next AddNode while it is
// active.
func (g *Graph) CreateBranch(name, baseNodeID string, meta BranchMetadata) (*Branch, error) {
	if !g.Initialized() {
		return nil, ErrNotInitialized
	}
	if g.branchByName(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchExists, name)
	}
	if baseNodeID == "" {
		baseNodeID = g.currentNodeID
	}
	if _, ok := g.nodes[baseNodeID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrBaseNodeNotFound, baseNodeID)
	}

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
	branch := &Branch{
		ID:         newBranchID(),
		Name:       name,
		BaseNodeID: baseNodeID,
		Nodes:      []string{baseNodeID},
		Metadata:   meta,
	}
	g.branches[branch.ID] = branch
	return branch, nil
}

// SwitchBranch activates the target branch and moves the current node to its
// most recent node. Unknown ids leave the graph untouched.
func (g *Graph) SwitchBranch(branchID string) NavigationResult {
	branch, ok := g.branches[branchID]
	if !ok {
		return NavigationResult{Reason: "branch not found"}
	}
	g.activateBranch(branch.ID)
	g.currentNodeID = branch.Tip()
	node := g.nodes[g.currentNodeID]
	g.emitter.Emit(Event{Type: EventVariationChange, NodeID: node.ID, BranchID: branch.ID})
	return NavigationResult{Success: true, Node: node}
}

// NavigateToNode sets the current node directly, auto-switching the current
// branch when the node belongs to a different one. Navigating to the current
// node is an idempotent no-op.
func (g *Graph) NavigateToNode(nodeID string) NavigationResult {
	node, ok := g.nodes[nodeID]
	if !ok {
		return NavigationResult{Reason: "node not found"}
	}
	if nodeID == g.currentNodeID {
		return NavigationResult{Success: true, Node: node}
	}

	g.currentNodeID = nodeID
	if cur := g.branches[g.currentBranchID]; cur == nil || cur.Name != node.BranchName {
		if b := g.branchByName(node.BranchName); b != nil {
			g.activateBranch(b.ID)
		}
	}
	g.emitter.Emit(Event{Type: EventVariationChange, NodeID: node.ID, BranchID: g.currentBranchID})
	return NavigationResult{Success: true, Node: node}
}

// Undo navigates to the current node's parent.
func (g *Graph) Undo() NavigationResult {
	cur := g.CurrentNode()
	if cur == nil || cur.ParentID == "" {
		return NavigationResult{Reason: "no parent node to undo to"}
	}
	return g.NavigateToNode(cur.ParentID)
}

// Redo navigates to the current node's first child. With multiple children
// (after branching) the choice is ambiguous; the store does not track the
// last visited child, so first child it is.
func (g *Graph) Redo() NavigationResult {
	cur := g.CurrentNode()
	if cur == nil || len(cur.Children) == 0 {
		return NavigationResult{Reason: "no child node to redo to"}
	}
	return g.NavigateToNode(cur.Children[0])
}

// CurrentNode returns the node the graph points at, nil before Initialize.
func (g *Graph) CurrentNode() *HistoryNode { return g.nodes[g.currentNodeID] }

// CurrentBranch returns the active branch, nil before Initialize.
func (g *Graph) CurrentBranch() *Branch { return g.branches[g.currentBranchID] }

// RootNode returns the root, nil before Initialize.
func (g *Graph) RootNode() *HistoryNode { return g.nodes[g.rootNodeID] }

// Node looks a node up by id.
func (g *Graph) Node(id string) (*HistoryNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Branches returns all branches, ordered by creation time then name.
func (g *Graph) Branches() []*Branch {
	out := make([]*Branch, 0, len(g.branches))
	for _, b := range g.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Metadata.CreatedAt.Equal(out[j].Metadata.CreatedAt) {
			return out[i].Metadata.CreatedAt.Before(out[j].Metadata.CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PathToNode returns the ordered node list from the root to the target.
func (g *Graph) PathToNode(nodeID string) ([]*HistoryNode, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	var reversed []*HistoryNode
	for node != nil {
		reversed = append(reversed, node)
		if node.ParentID == "" {
			break
		}
		node = g.nodes[node.ParentID]
	}

	path := make([]*HistoryNode, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path, nil
}

// Descendants returns every transitive child of the node, breadth-first in
// children order, which makes the result deterministic.
func (g *Graph) Descendants(nodeID string) ([]*HistoryNode, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	var out []*HistoryNode
	queue := append([]string(nil), node.Children...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		child, ok := g.nodes[id]
		if !ok {
			continue
		}
		out = append(out, child)
		queue = append(queue, child.Children...)
	}
	return out, nil
}

// CompareNodes diffs the snapshots of two nodes.
func (g *Graph) CompareNodes(aID, bID string) (DiffResult, error) {
	a, okA := g.nodes[aID]
	b, okB := g.nodes[bID]
	if !okA || !okB {
		return DiffResult{}, fmt.Errorf("%w: %s, %s", ErrNodeNotFound, aID, bID)
	}
	return Compare(a.Snapshot, b.Snapshot), nil
}

// Timeline returns the ordered window of reachable nodes for display and
// snapping: the path from the root to the current branch's base, then the
// branch's own chain through its tip.
func (g *Graph) Timeline() []*HistoryNode {
	branch := g.CurrentBranch()
	if branch == nil {
		return nil
	}
	prefix, err := g.PathToNode(branch.BaseNodeID)
	if err != nil {
		return nil
	}
	out := prefix
	for _, id := range branch.Nodes {
		if id == branch.BaseNodeID {
			continue
		}
		if n, ok := g.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// BranchByName finds a branch by its unique name.
func (g *Graph) BranchByName(name string) (*Branch, bool) {
	b := g.branchByName(name)
	return b, b != nil
}

// branchByName finds a branch by its unique name.
func (g *Graph) branchByName(name string) *Branch {
	for _, b := range g.branches {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// owningBranch resolves the branch a new child of nodeID should extend:
// the current branch when it contains the node, otherwise the branch the
// node is labeled with, otherwise any branch containing it (deterministic
// order).
func (g *Graph) owningBranch(nodeID string) *Branch {
	if cur := g.branches[g.currentBranchID]; cur != nil && cur.Contains(nodeID) {
		return cur
	}
	if n := g.nodes[nodeID]; n != nil {
		if b := g.branchByName(n.BranchName); b != nil && b.Contains(nodeID) {
			return b
		}
	}
	for _, b := range g.Branches() {
		if b.Contains(nodeID) {
			return b
		}
	}
	return nil
}

// forkBranchAt creates an anonymous fork branch based at the node.
func (g *Graph) forkBranchAt(nodeID string) *Branch {
	name := ""
	for {
		g.forkCounter++
		name = fmt.Sprintf("fork-%d", g.forkCounter)
		if g.branchByName(name) == nil {
			break
		}
	}
	branch := &Branch{
		ID:         newBranchID(),
		Name:       name,
		BaseNodeID: nodeID,
		Nodes:      []string{nodeID},
		Metadata:   BranchMetadata{CreatedAt: time.Now()},
	}
	g.branches[branch.ID] = branch
	return branch
}

// activateBranch flips IsActive flags and sets the current branch.
func (g *Graph) activateBranch(branchID string) {
	for id, b := range g.branches {
		b.IsActive = id == branchID
	}
	g.currentBranchID = branchID
}

// prune removes the oldest unprotected nodes, splicing each one out so its
// children reattach to its parent and every branch chain stays contiguous.
// Removed nodes go to the prune sink when one is registered.
func (g *Graph) prune(insertParentID string) {
	protected := map[string]bool{
		g.rootNodeID:    true,
		g.currentNodeID: true,
		insertParentID:  true,
	}
	for _, b := range g.branches {
		protected[b.BaseNodeID] = true
	}

	ids := g.policy.Select(g.nodes, protected)
	if len(ids) == 0 {
		return
	}

	removed := make([]*HistoryNode, 0, len(ids))
	for _, id := range ids {
		if n := g.spliceNode(id); n != nil {
			removed = append(removed, n)
		}
	}
	if g.pruneSink != nil && len(removed) > 0 {
		g.pruneSink(removed)
	}
}

// spliceNode removes one node, replacing it in its parent's children list
// with its own children (same position) and dropping it from every branch.
func (g *Graph) spliceNode(id string) *HistoryNode {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	parent := g.nodes[node.ParentID]
	if parent == nil {
		return nil
	}

	spliced := make([]string, 0, len(parent.Children)+len(node.Children)-1)
	for _, childID := range parent.Children {
		if childID == id {
			spliced = append(spliced, node.Children...)
			continue
		}
		spliced = append(spliced, childID)
	}
	parent.Children = spliced
	for _, childID := range node.Children {
		if child, ok := g.nodes[childID]; ok {
			child.ParentID = parent.ID
		}
	}

	for _, b := range g.branches {
		b.Nodes = removeID(b.Nodes, id)
	}
	delete(g.nodes, id)
	return node
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
