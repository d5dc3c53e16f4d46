package initialization

import (
	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/internal/managers"
	"github.com/terracarta/terracarta/internal/session"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

// Container wires the session store, the API client and the domain services
// the CLI commands depend on.
type Container struct {
	sessionStore *session.Store
	client       *terracarta.Client

	workspaces domain.WorkspaceService
	folders    domain.FolderService
	maps       domain.MapService
	versions   domain.VersionService
}

func NewContainer() (*Container, error) {
	store, err := session.NewStore("")
	if err != nil {
		return nil, err
	}

	client := terracarta.NewClient(
		terracarta.WithBaseURL(store.APIBaseURL()),
		terracarta.WithToken(store.Token()),
	)

	return &Container{
		sessionStore: store,
		client:       client,
		workspaces:   managers.NewWorkspaceManager(managers.WorkspaceManagerDependencies{Client: client}),
		folders:      managers.NewFolderManager(managers.FolderManagerDependencies{Client: client}),
		maps:         managers.NewMapManager(managers.MapManagerDependencies{Client: client}),
		versions:     managers.NewVersionManager(managers.VersionManagerDependencies{Client: client}),
	}, nil
}

func (c *Container) GetSessionStore() *session.Store { return c.sessionStore }

func (c *Container) GetClient() *terracarta.Client { return c.client }

func (c *Container) GetWorkspaceService() domain.WorkspaceService { return c.workspaces }

func (c *Container) GetFolderService() domain.FolderService { return c.folders }

func (c *Container) GetMapService() domain.MapService { return c.maps }

func (c *Container) GetVersionService() domain.VersionService { return c.versions }
