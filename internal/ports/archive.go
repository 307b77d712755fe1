package ports

import "varia/internal/domain"

// StudioArchive persists history graphs between process runs and gives
// pruned nodes a durable home, so the in-memory bound never destroys work.
type StudioArchive interface {
	// SaveGraph stores the full export under the studio name, replacing any
	// previous state.
	SaveGraph(studio string, exp *domain.HistoryExport) error

	// LoadGraph retrieves a stored export. Returns (nil, nil) when the
	// studio has no saved history yet.
	LoadGraph(studio string) (*domain.HistoryExport, error)

	// ArchivePruned moves nodes evicted by the prune policy into cold
	// storage.
	ArchivePruned(studio string, nodes []*domain.HistoryNode) error

	// PrunedNodes lists cold-stored nodes for a studio, oldest first.
	PrunedNodes(studio string) ([]*domain.HistoryNode, error)

	Close() error
}
