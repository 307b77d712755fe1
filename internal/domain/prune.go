package domain

import "sort"

// DefaultMaxHistorySize bounds the graph when the caller does not choose a
// capacity.
const DefaultMaxHistorySize = 500

// pruneFraction is the share of capacity removed per trigger.
const pruneFraction = 0.10

// PrunePolicy selects the oldest unprotected nodes once the graph is at
// capacity. Protected and never pruned: the root, every branch's base node,
// and the current node. Pruning is a lossy, best-effort bound; callers that
// must never lose work attach a prune sink (see WithPruneSink) that moves
// victims to cold storage.
type PrunePolicy struct {
	MaxNodes int
}

// AtCapacity reports whether an insertion should trigger pruning first.
func (p PrunePolicy) AtCapacity(count int) bool {
	return count >= p.MaxNodes
}

// batchSize is roughly 10% of capacity, at least one node.
func (p PrunePolicy) batchSize() int {
	n := int(float64(p.MaxNodes) * pruneFraction)
	if n < 1 {
		n = 1
	}
	return n
}

// Select returns the ids to prune, oldest timestamp first. Ties break on id
// so the choice is deterministic.
func (p PrunePolicy) Select(nodes map[string]*HistoryNode, protected map[string]bool) []string {
	candidates := make([]*HistoryNode, 0, len(nodes))
	for id, n := range nodes {
		if protected[id] {
			continue
		}
		candidates = append(candidates, n)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].Timestamp.Equal(candidates[j].Timestamp) {
			return candidates[i].Timestamp.Before(candidates[j].Timestamp)
		}
		return candidates[i].ID < candidates[j].ID
	})

	limit := p.batchSize()
	if limit > len(candidates) {
		limit = len(candidates)
	}
	ids := make([]string, 0, limit)
	for _, n := range candidates[:limit] {
		ids = append(ids, n.ID)
	}
	return ids
}
