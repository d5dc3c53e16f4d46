package domain

// Workspace is the top-level container owning a folder tree.
type Workspace struct {
	ID   string
	Name string
}
