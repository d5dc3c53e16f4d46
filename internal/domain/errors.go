package domain

import "errors"

var (
	// ErrAuthRequired signals that no usable session exists and the caller
	// must run the login flow before retrying. The intended destination is
	// persisted as a NavigationIntent so login can resume it.
	ErrAuthRequired = errors.New("authentication required")

	// ErrFolderNotFound is returned when a folder id or path does not
	// resolve inside the workspace.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrCycle is returned when a folder move would make a folder its own
	// ancestor.
	ErrCycle = errors.New("folder move would create a cycle")
)
