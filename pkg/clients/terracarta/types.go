// Package terracarta provides a Go SDK for the Terracarta platform API.
// This package has no internal dependencies and can be used standalone.
package terracarta

import "time"

// Workspace represents a workspace as returned by the API
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderInfo represents a folder as returned by the API
type FolderInfo struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID string    `json:"parent_folder_id"`
	WorkspaceID    string    `json:"workspace_id"`
	CreatedTime    time.Time `json:"created_time"`
	UpdatedTime    time.Time `json:"updated_time"`
}

// MapInfo represents a map file as returned by the API
type MapInfo struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	FolderID      string    `json:"folder_id"`
	LastVersionID string    `json:"last_version_id"`
	UpdatedTime   time.Time `json:"updated_time"`
}

// FolderContent is the content of a folder: the folder itself, its child
// folders and the map files it holds
type FolderContent struct {
	Folder       FolderInfo   `json:"folder"`
	ChildFolders []FolderInfo `json:"child_folders"`
	MapInfos     []MapInfo    `json:"map_infos"`
}

// FolderPathItem is one segment of a folder's ancestor path
type FolderPathItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VersionState is the progress snapshot of a map processing job
type VersionState struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// Version represents one uploaded revision of a map file
type Version struct {
	ID    string       `json:"id"`
	MapID string       `json:"map_id"`
	State VersionState `json:"state"`
}

// CreateFolderRequest represents the request to create a folder
type CreateFolderRequest struct {
	ParentFolderID string `json:"parent_folder_id"`
	FolderName     string `json:"folder_name"`
}

// MoveFolderRequest represents the request to re-parent a folder
type MoveFolderRequest struct {
	FolderID    string `json:"folder_id"`
	NewParentID string `json:"new_parent_id"`
}

// RenameFolderRequest represents the request to rename a folder
type RenameFolderRequest struct {
	FolderID string `json:"folder_id"`
	NewName  string `json:"new_name"`
}

// MoveMapRequest represents the request to move a map into another folder
type MoveMapRequest struct {
	MapID    string `json:"map_id"`
	FolderID string `json:"folder_id"`
}

// UploadMapResponse is returned after a successful map upload
type UploadMapResponse struct {
	MapID     string `json:"map_id"`
	VersionID string `json:"version_id"`
}
