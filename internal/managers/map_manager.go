package managers

import (
	"context"
	"fmt"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

type mapManager struct {
	client *terracarta.Client
}

type MapManagerDependencies struct {
	Client *terracarta.Client
}

func NewMapManager(deps MapManagerDependencies) domain.MapService {
	return &mapManager{
		client: deps.Client,
	}
}

// MoveMap moves a map file into another folder
func (m *mapManager) MoveMap(ctx context.Context, params domain.MoveMapParams) error {
	err := m.client.MoveMap(ctx, &terracarta.MoveMapRequest{
		MapID:    params.MapID,
		FolderID: params.FolderID,
	})
	if err != nil {
		return fmt.Errorf("failed to move map: %w", err)
	}

	return nil
}

// DeleteMap deletes a map file by id
func (m *mapManager) DeleteMap(ctx context.Context, mapID string) error {
	if err := m.client.DeleteMap(ctx, mapID); err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}

	return nil
}

// UploadMap uploads a new map file into a folder
func (m *mapManager) UploadMap(ctx context.Context, params domain.UploadMapParams) (domain.MapUpload, error) {
	resp, err := m.client.UploadMap(ctx, &terracarta.UploadMapRequest{
		WorkspaceID: params.WorkspaceID,
		FolderID:    params.FolderID,
		Name:        params.Name,
		ContentType: params.ContentType,
		Reader:      params.Reader,
	})
	if err != nil {
		return domain.MapUpload{}, fmt.Errorf("failed to upload map: %w", err)
	}

	return domain.MapUpload{
		MapID:     resp.MapID,
		VersionID: resp.VersionID,
	}, nil
}
