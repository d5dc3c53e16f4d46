package browser

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/internal/session"
)

// SessionState is the slice of the persisted session the controller needs:
// the auth guard, the interrupted-navigation intent, and the one-shot tour
// flag.
type SessionState interface {
	HasValidToken() bool
	SetIntent(intent session.NavigationIntent) error
	TourPending() bool
	ClearTourPending()
}

type ControllerDependencies struct {
	Workspaces domain.WorkspaceService
	Folders    domain.FolderService
	Maps       domain.MapService
	Session    SessionState
	Notifier   Notifier
}

// Controller orchestrates the browser for one (workspace, path) pair. It is
// the sole writer of the folder/map listing; items and the drag-and-drop
// coordinator signal back through callbacks and the controller reconciles by
// re-fetching from the authoritative store.
//
// Safe for concurrent use: UI command goroutines mutate while the render
// loop reads. The mutex is never held across a network call.
type Controller struct {
	workspaces domain.WorkspaceService
	folders    domain.FolderService
	maps       domain.MapService
	session    SessionState
	notifier   Notifier

	workspaceID string

	mu          sync.Mutex
	path        string
	current     domain.Folder
	folderItems []*FolderItem
	mapItems    []*MapItem
	tree        *Tree

	loading   bool
	loaded    bool
	viewMode  ViewMode
	tourShown bool

	createDialogOpen bool
	uploadDialogOpen bool
}

func NewController(workspaceID, path string, deps ControllerDependencies) *Controller {
	return &Controller{
		workspaces:  deps.Workspaces,
		folders:     deps.Folders,
		maps:        deps.Maps,
		session:     deps.Session,
		notifier:    deps.Notifier,
		workspaceID: workspaceID,
		path:        path,
		tree:        NewTree(),
		viewMode:    ViewList,
	}
}

// WorkspaceID returns the workspace this controller browses.
func (c *Controller) WorkspaceID() string { return c.workspaceID }

// Path returns the current folder id; empty means the workspace root.
func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// CurrentFolder returns the folder whose content is displayed.
func (c *Controller) CurrentFolder() domain.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Folders returns the child folder items of the current folder.
func (c *Controller) Folders() []*FolderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folderItems
}

// Maps returns the map items of the current folder.
func (c *Controller) Maps() []*MapItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mapItems
}

// Listing returns the folder and map items as one consistent snapshot. A
// concurrent refresh cannot swap one slice out from under the other, so
// indices derived from the snapshot stay in bounds.
func (c *Controller) Listing() ([]*FolderItem, []*MapItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folderItems, c.mapItems
}

// Loading reports whether the initial load for the current path is pending.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Empty reports whether the loaded folder has neither child folders nor
// maps, in which case the UI shows an upload call-to-action instead of an
// empty listing.
func (c *Controller) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded && len(c.folderItems) == 0 && len(c.mapItems) == 0
}

// ViewMode returns the current layout.
func (c *Controller) ViewMode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMode
}

// SetViewMode switches between list and grid layout.
func (c *Controller) SetViewMode(mode ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = mode
}

// CreateDialogOpen reports whether the create-folder dialog is showing.
func (c *Controller) CreateDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createDialogOpen
}

// SetCreateDialogOpen toggles the create-folder dialog.
func (c *Controller) SetCreateDialogOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createDialogOpen = open
}

// UploadDialogOpen reports whether the upload dialog is showing.
func (c *Controller) UploadDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploadDialogOpen
}

// SetUploadDialogOpen toggles the upload dialog.
func (c *Controller) SetUploadDialogOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadDialogOpen = open
}

// Load performs the initial fetch for the current (workspace, path). When no
// usable session exists it records the intended destination and returns
// ErrAuthRequired so the caller can route through the login flow and resume.
func (c *Controller) Load(ctx context.Context) error {
	if c.session != nil && !c.session.HasValidToken() {
		if err := c.session.SetIntent(session.NavigationIntent{
			WorkspaceID: c.workspaceID,
			Path:        c.Path(),
		}); err != nil {
			log.Warn().Err(err).Msg("failed to record navigation intent")
		}
		return domain.ErrAuthRequired
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	err := c.fetch(ctx)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	return err
}

// Refresh re-fetches the current folder content without the loading gate.
// Every mutation (create, upload, move, rename, delete) funnels through it;
// the listing is never patched locally.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller) fetch(ctx context.Context) error {
	path := c.Path()

	var content domain.FolderContent
	var err error

	if path == "" {
		content, err = c.folders.GetWorkspaceRootContent(ctx, c.workspaceID)
	} else {
		content, err = c.folders.GetFolder(ctx, path)
	}
	if err != nil {
		log.Error().Err(err).Str("workspace_id", c.workspaceID).Str("path", path).Msg("failed to load folder content")
		NotifyError(c.notifier, "Loading failed", "The folder content could not be loaded.")
		return err
	}

	c.mu.Lock()
	c.apply(content)
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// apply decomposes fetched content into the controller state and rebuilds
// the item list and the tree arena. Item construction resets transient edit
// state, matching a fresh fetch being a fresh render. Callers hold the lock.
func (c *Controller) apply(content domain.FolderContent) {
	c.current = content.Folder

	deps := ItemDependencies{
		Folders:  c.folders,
		Maps:     c.maps,
		Notifier: c.notifier,
		OnDelete: func(ctx context.Context) {
			if err := c.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("refresh after delete failed")
			}
		},
	}

	c.folderItems = make([]*FolderItem, len(content.ChildFolders))
	for i, folder := range content.ChildFolders {
		c.folderItems[i] = NewFolderItem(folder, deps)
	}

	c.mapItems = make([]*MapItem, len(content.Maps))
	for i, m := range content.Maps {
		c.mapItems[i] = NewMapItem(m, deps)
	}

	c.tree = NewTree()
	c.tree.AddFolder(content.Folder)
	for _, folder := range content.ChildFolders {
		c.tree.AddFolder(folder)
	}
	for _, m := range content.Maps {
		c.tree.AddMap(m)
	}
}

// SeedAncestors enriches the tree arena with the breadcrumb's ancestor
// chain so descendant checks can walk above the current folder.
func (c *Controller) SeedAncestors(items []domain.FolderPathItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.AddPath(items)
}

// NavigateTo switches the controller to another folder and loads it. An
// empty folder id navigates to the workspace root.
func (c *Controller) NavigateTo(ctx context.Context, folderID string) error {
	c.mu.Lock()
	c.path = folderID
	c.loaded = false
	c.mu.Unlock()
	return c.Load(ctx)
}

// CreateFolder creates a child folder under the current folder and
// refreshes.
func (c *Controller) CreateFolder(ctx context.Context, name string) error {
	parentID := c.CurrentFolder().ID

	_, err := c.folders.CreateFolder(ctx, domain.CreateFolderParams{
		ParentFolderID: parentID,
		Name:           name,
	})
	if err != nil {
		log.Error().Err(err).Str("parent_id", parentID).Msg("failed to create folder")
		NotifyError(c.notifier, "Create failed", "The folder could not be created.")
		return err
	}

	c.SetCreateDialogOpen(false)
	return c.Refresh(ctx)
}

// Upload sends a new map file into the current folder, refreshes the
// listing, and returns the upload handle whose version the status poller
// tracks until processing finishes.
func (c *Controller) Upload(ctx context.Context, params domain.UploadMapParams) (domain.MapUpload, error) {
	params.WorkspaceID = c.workspaceID
	if params.FolderID == "" {
		params.FolderID = c.CurrentFolder().ID
	}

	upload, err := c.maps.UploadMap(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("folder_id", params.FolderID).Msg("failed to upload map")
		NotifyError(c.notifier, "Upload failed", "The map could not be uploaded.")
		return domain.MapUpload{}, err
	}

	c.SetUploadDialogOpen(false)
	if err := c.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("refresh after upload failed")
	}
	return upload, nil
}

// NewCoordinator builds the drag-and-drop coordinator bound to this
// controller: moves validate against the tree arena and reconcile with a
// refresh.
func (c *Controller) NewCoordinator() *Coordinator {
	return NewCoordinator(CoordinatorDependencies{
		Folders:   c.folders,
		Maps:      c.maps,
		Validator: c,
		Notifier:  c.notifier,
		OnMoved: func(ctx context.Context) {
			if err := c.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("refresh after move failed")
			}
		},
	})
}

// WouldCycle implements the coordinator's cycle validator against the
// current tree arena.
func (c *Controller) WouldCycle(folderID, newParentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.WouldCycle(folderID, newParentID)
}

// ShouldShowTour reports whether the one-shot guided tour must run now: the
// onboarding flow armed it and the first load has completed. The flag is
// cleared on first use; remounts of the same screen do not re-trigger it.
func (c *Controller) ShouldShowTour() bool {
	if c.session == nil {
		return false
	}

	c.mu.Lock()
	if c.tourShown || !c.loaded || !c.session.TourPending() {
		c.mu.Unlock()
		return false
	}
	c.tourShown = true
	c.mu.Unlock()

	c.session.ClearTourPending()
	return true
}
