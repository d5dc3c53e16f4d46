package managers

import (
	"context"
	"fmt"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

type versionManager struct {
	client *terracarta.Client
}

type VersionManagerDependencies struct {
	Client *terracarta.Client
}

func NewVersionManager(deps VersionManagerDependencies) domain.VersionService {
	return &versionManager{
		client: deps.Client,
	}
}

// GetVersion retrieves a map version and its processing state by id
func (m *versionManager) GetVersion(ctx context.Context, versionID string) (domain.Version, error) {
	version, err := m.client.GetVersion(ctx, versionID)
	if err != nil {
		return domain.Version{}, fmt.Errorf("failed to get version from API: %w", err)
	}

	return domain.Version{
		ID:    version.ID,
		MapID: version.MapID,
		State: domain.VersionState{
			Status:   domain.VersionStatus(version.State.Status),
			Progress: version.State.Progress,
			Message:  version.State.Message,
		},
	}, nil
}
