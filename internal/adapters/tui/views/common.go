package views

import (
	"fmt"

	"varia/internal/domain"
)

// View switching messages handled by the App model

type SwitchToFeedMsg struct{}

type SwitchToBranchesMsg struct{}

type SwitchToDiffMsg struct {
	AID string
	BID string
}

type SwitchToHelpMsg struct{}

// Shared messages

type errMsg struct {
	err error
}

type statusMsg struct {
	text string
}

// truncate shortens a string for single-line display
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// snapshotSummary renders a one-line description of a snapshot's envelope
// (layer count and canvas size) without interpreting its content.
func snapshotSummary(s domain.Snapshot) string {
	layers := 0
	if list, ok := s["layers"].([]any); ok {
		layers = len(list)
	}
	canvas := ""
	if c, ok := s["canvas"].(map[string]any); ok {
		w, wok := c["width"].(float64)
		h, hok := c["height"].(float64)
		if wok && hok {
			canvas = fmt.Sprintf(" %.0fx%.0f", w, h)
		}
	}
	return fmt.Sprintf("%d layers%s", layers, canvas)
}
