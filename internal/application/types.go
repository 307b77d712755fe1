package application

import "varia/internal/domain"

// Re-export domain types for use by adapters
type (
	HistoryNode      = domain.HistoryNode
	Branch           = domain.Branch
	Snapshot         = domain.Snapshot
	NodeMetadata     = domain.NodeMetadata
	NavigationResult = domain.NavigationResult
	DiffResult       = domain.DiffResult
	ChangeDetail     = domain.ChangeDetail
	Event            = domain.Event
)

const (
	SourceUser   = domain.SourceUser
	SourceAI     = domain.SourceAI
	SourceImport = domain.SourceImport
	SourceFork   = domain.SourceFork
)
