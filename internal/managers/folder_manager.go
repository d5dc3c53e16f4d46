package managers

import (
	"context"
	"fmt"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

type folderManager struct {
	client *terracarta.Client
}

type FolderManagerDependencies struct {
	Client *terracarta.Client
}

func NewFolderManager(deps FolderManagerDependencies) domain.FolderService {
	return &folderManager{
		client: deps.Client,
	}
}

// GetFolder retrieves a folder's content by id
func (m *folderManager) GetFolder(ctx context.Context, folderID string) (domain.FolderContent, error) {
	content, err := m.client.GetFolder(ctx, folderID)
	if err != nil {
		if terracarta.IsNotFoundError(err) {
			return domain.FolderContent{}, domain.ErrFolderNotFound
		}
		return domain.FolderContent{}, fmt.Errorf("failed to get folder from API: %w", err)
	}

	return toFolderContent(content), nil
}

// GetWorkspaceRootContent retrieves the content of a workspace's root folder
func (m *folderManager) GetWorkspaceRootContent(ctx context.Context, workspaceID string) (domain.FolderContent, error) {
	content, err := m.client.GetWorkspaceRootContent(ctx, workspaceID)
	if err != nil {
		return domain.FolderContent{}, fmt.Errorf("failed to get workspace root content from API: %w", err)
	}

	return toFolderContent(content), nil
}

// GetFolderPath retrieves the ancestor path of a folder, root to leaf
func (m *folderManager) GetFolderPath(ctx context.Context, folderID string) ([]domain.FolderPathItem, error) {
	items, err := m.client.GetFolderPath(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder path from API: %w", err)
	}

	result := make([]domain.FolderPathItem, len(items))
	for i, item := range items {
		result[i] = domain.FolderPathItem{
			ID:   item.ID,
			Name: item.Name,
		}
	}

	return result, nil
}

// CreateFolder creates a folder under the given parent
func (m *folderManager) CreateFolder(ctx context.Context, params domain.CreateFolderParams) (domain.Folder, error) {
	folder, err := m.client.CreateFolder(ctx, &terracarta.CreateFolderRequest{
		ParentFolderID: params.ParentFolderID,
		FolderName:     params.Name,
	})
	if err != nil {
		return domain.Folder{}, fmt.Errorf("failed to create folder: %w", err)
	}

	return toFolder(*folder), nil
}

// MoveFolder re-parents a folder
func (m *folderManager) MoveFolder(ctx context.Context, params domain.MoveFolderParams) error {
	err := m.client.MoveFolder(ctx, &terracarta.MoveFolderRequest{
		FolderID:    params.FolderID,
		NewParentID: params.NewParentID,
	})
	if err != nil {
		return fmt.Errorf("failed to move folder: %w", err)
	}

	return nil
}

// RenameFolder renames a folder
func (m *folderManager) RenameFolder(ctx context.Context, params domain.RenameFolderParams) (domain.Folder, error) {
	folder, err := m.client.RenameFolder(ctx, &terracarta.RenameFolderRequest{
		FolderID: params.FolderID,
		NewName:  params.NewName,
	})
	if err != nil {
		return domain.Folder{}, fmt.Errorf("failed to rename folder: %w", err)
	}

	return toFolder(*folder), nil
}

// DeleteFolder deletes a folder by id
func (m *folderManager) DeleteFolder(ctx context.Context, folderID string) error {
	if err := m.client.DeleteFolder(ctx, folderID); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return nil
}

func toFolder(f terracarta.FolderInfo) domain.Folder {
	return domain.Folder{
		ID:             f.ID,
		Name:           f.Name,
		ParentFolderID: f.ParentFolderID,
		WorkspaceID:    f.WorkspaceID,
		CreatedTime:    f.CreatedTime,
		UpdatedTime:    f.UpdatedTime,
	}
}

func toFolderContent(c *terracarta.FolderContent) domain.FolderContent {
	content := domain.FolderContent{
		Folder:       toFolder(c.Folder),
		ChildFolders: make([]domain.Folder, len(c.ChildFolders)),
		Maps:         make([]domain.MapInfo, len(c.MapInfos)),
	}

	for i, child := range c.ChildFolders {
		content.ChildFolders[i] = toFolder(child)
	}

	for i, mapInfo := range c.MapInfos {
		content.Maps[i] = domain.MapInfo{
			ID:          mapInfo.ID,
			Name:        mapInfo.Name,
			Type:        mapInfo.Type,
			FolderID:    mapInfo.FolderID,
			VersionID:   mapInfo.LastVersionID,
			UpdatedTime: mapInfo.UpdatedTime,
		}
	}

	return content
}
