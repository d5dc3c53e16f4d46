package domain

import (
	"strings"
	"time"
)

// RootFolderName identifies the synthetic per-workspace root folder. It is
// filtered out of visible breadcrumbs and rendered as the workspace name
// instead.
const RootFolderName = "root"

// Folder is a tree node grouping child folders and map files. Folders form a
// strict tree (single parent, no cycles) rooted at the workspace root.
type Folder struct {
	ID             string
	Name           string
	ParentFolderID string
	WorkspaceID    string
	CreatedTime    time.Time
	UpdatedTime    time.Time
}

// IsRoot reports whether the folder is the synthetic workspace root.
func (f Folder) IsRoot() bool {
	return strings.EqualFold(f.Name, RootFolderName)
}

// MapInfo is a single geospatial dataset file tracked by the platform. A map
// belongs to exactly one folder at a time.
type MapInfo struct {
	ID          string
	Name        string
	Type        string
	FolderID    string
	VersionID   string
	UpdatedTime time.Time
}

// FolderContent is the atomic unit fetched when entering a folder.
type FolderContent struct {
	Folder       Folder
	ChildFolders []Folder
	Maps         []MapInfo
}

// FolderPathItem is a projection of a folder used for breadcrumb rendering.
type FolderPathItem struct {
	ID   string
	Name string
}

// IsRoot reports whether the path item names the synthetic workspace root.
func (p FolderPathItem) IsRoot() bool {
	return strings.EqualFold(p.Name, RootFolderName)
}
