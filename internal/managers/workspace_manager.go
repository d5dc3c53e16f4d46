package managers

import (
	"context"
	"fmt"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

type workspaceManager struct {
	client *terracarta.Client
}

type WorkspaceManagerDependencies struct {
	Client *terracarta.Client
}

func NewWorkspaceManager(deps WorkspaceManagerDependencies) domain.WorkspaceService {
	return &workspaceManager{
		client: deps.Client,
	}
}

// GetWorkspace retrieves workspace information by ID
func (m *workspaceManager) GetWorkspace(ctx context.Context, workspaceID string) (domain.Workspace, error) {
	workspace, err := m.client.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("failed to get workspace from API: %w", err)
	}

	return domain.Workspace{
		ID:   workspace.ID,
		Name: workspace.Name,
	}, nil
}

// GetWorkspaces retrieves all workspaces visible to the authenticated user
func (m *workspaceManager) GetWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	workspaces, err := m.client.GetWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces from API: %w", err)
	}

	result := make([]domain.Workspace, len(workspaces))
	for i, workspace := range workspaces {
		result[i] = domain.Workspace{
			ID:   workspace.ID,
			Name: workspace.Name,
		}
	}

	return result, nil
}
