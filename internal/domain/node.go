package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Source identifies who produced a variation.
type Source string

const (
	SourceUser   Source = "user"
	SourceAI     Source = "ai"
	SourceImport Source = "import"
	SourceFork   Source = "fork"
)

// NodeMetadata describes how a variation came to exist.
type NodeMetadata struct {
	Source      Source  `json:"source"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	AIPrompt    string  `json:"aiPrompt,omitempty"`
}

// HistoryNode is one immutable design state in the graph. Nodes reference
// each other only by id; the Graph owns the single id-indexed map.
type HistoryNode struct {
	ID         string       `json:"id"`
	ParentID   string       `json:"parentId,omitempty"` // empty only for the root
	Snapshot   Snapshot     `json:"snapshot"`
	Timestamp  time.Time    `json:"timestamp"`
	Metadata   NodeMetadata `json:"metadata"`
	Children   []string     `json:"children"`
	BranchName string       `json:"branchName"`
}

// BranchMetadata carries display and protection attributes for a branch.
type BranchMetadata struct {
	CreatedAt time.Time `json:"createdAt"`
	Color     string    `json:"color,omitempty"`
	Protected bool      `json:"protected,omitempty"`
}

// Branch is a named, ordered, contiguous path of node ids rooted at
// BaseNodeID. The base node may be shared with other branches.
type Branch struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	BaseNodeID string         `json:"baseNodeId"`
	Nodes      []string       `json:"nodes"`
	IsActive   bool           `json:"isActive"`
	Metadata   BranchMetadata `json:"metadata"`
}

// Tip returns the most recent node id on the branch.
func (b *Branch) Tip() string {
	if len(b.Nodes) == 0 {
		return b.BaseNodeID
	}
	return b.Nodes[len(b.Nodes)-1]
}

// Contains reports whether the branch chain includes the node id.
func (b *Branch) Contains(nodeID string) bool {
	for _, id := range b.Nodes {
		if id == nodeID {
			return true
		}
	}
	return false
}

func newNodeID() string   { return "n-" + randomHex(8) }
func newBranchID() string { return "b-" + randomHex(8) }

func randomHex(n int) string {
	buf := make([]byte, n)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
