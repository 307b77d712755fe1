package domain

import "errors"

// Structural graph errors. Operations that return one of these perform no
// mutation. Boundary conditions (undo at root, snap past an edge) are not
// errors; they surface as NavigationResult values and events.
var (
	ErrNotInitialized   = errors.New("history not initialized")
	ErrNoParent         = errors.New("no parent node available")
	ErrParentNotFound   = errors.New("parent node not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrBranchExists     = errors.New("branch name already exists")
	ErrBaseNodeNotFound = errors.New("base node not found")
	ErrVersionMismatch  = errors.New("history version mismatch")
	ErrImportFailed     = errors.New("history import failed")
)
