package ports

import "varia/internal/domain"

// VariationSuggestion is an AI-produced design variation ready to commit.
type VariationSuggestion struct {
	Snapshot    domain.Snapshot
	Description string
	Confidence  float64 // 0-1, the model's own estimate
	Prompt      string  // the instruction the snapshot was generated from
}

// DesignAssistant defines the interface for AI-generated design variations.
type DesignAssistant interface {
	// SuggestVariation produces a new snapshot evolving the given one
	// according to the instruction. The current snapshot is passed as
	// context; the assistant must return a complete snapshot, not a patch.
	SuggestVariation(current domain.Snapshot, instruction string) (*VariationSuggestion, error)

	// IsAvailable returns true if the assistant (e.g., Claude CLI) is usable.
	IsAvailable() bool
}
