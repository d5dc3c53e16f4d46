package domain

import (
	"context"
	"io"
)

type CreateFolderParams struct {
	ParentFolderID string
	Name           string
}

type MoveFolderParams struct {
	FolderID    string
	NewParentID string
}

type RenameFolderParams struct {
	FolderID string
	NewName  string
}

type MoveMapParams struct {
	MapID    string
	FolderID string
}

type UploadMapParams struct {
	WorkspaceID string
	FolderID    string
	Name        string
	ContentType string
	Reader      io.Reader
}

// MapUpload is the handle returned by a successful upload: the created map
// and the version whose processing job the poller tracks.
type MapUpload struct {
	MapID     string
	VersionID string
}

// WorkspaceService exposes workspace metadata, read-only for the browser.
type WorkspaceService interface {
	GetWorkspace(ctx context.Context, workspaceID string) (Workspace, error)
	GetWorkspaces(ctx context.Context) ([]Workspace, error)
}

// FolderService is the folder side of the remote authoritative store.
type FolderService interface {
	GetFolder(ctx context.Context, folderID string) (FolderContent, error)
	GetWorkspaceRootContent(ctx context.Context, workspaceID string) (FolderContent, error)
	GetFolderPath(ctx context.Context, folderID string) ([]FolderPathItem, error)
	CreateFolder(ctx context.Context, params CreateFolderParams) (Folder, error)
	MoveFolder(ctx context.Context, params MoveFolderParams) error
	RenameFolder(ctx context.Context, params RenameFolderParams) (Folder, error)
	DeleteFolder(ctx context.Context, folderID string) error
}

// MapService mutates map files.
type MapService interface {
	MoveMap(ctx context.Context, params MoveMapParams) error
	DeleteMap(ctx context.Context, mapID string) error
	UploadMap(ctx context.Context, params UploadMapParams) (MapUpload, error)
}

// VersionService reads processing job state for uploaded map versions.
type VersionService interface {
	GetVersion(ctx context.Context, versionID string) (Version, error)
}
