package config

import (
	"os"
	"strconv"
)

const (
	// DefaultStudio is the studio name used when none is configured.
	DefaultStudio = "default"

	// DefaultModel is the claude CLI model for variation suggestions.
	DefaultModel = "haiku"
)

// Studio returns the studio name from the VARIA_STUDIO env var,
// falling back to DefaultStudio.
func Studio() string {
	if env := os.Getenv("VARIA_STUDIO"); env != "" {
		return env
	}
	return DefaultStudio
}

// Model returns the assistant model from VARIA_MODEL, falling back to
// DefaultModel.
func Model() string {
	if env := os.Getenv("VARIA_MODEL"); env != "" {
		return env
	}
	return DefaultModel
}

// MaxHistorySize returns the graph node cap from VARIA_MAX_HISTORY; zero
// means the domain default.
func MaxHistorySize() int {
	if env := os.Getenv("VARIA_MAX_HISTORY"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
