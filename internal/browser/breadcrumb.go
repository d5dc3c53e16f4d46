package browser

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/domain"
)

// Breadcrumbs longer than this collapse to an ellipsis plus the most
// specific ancestors.
const maxVisibleSegments = 4

// truncatedTailLength is how many trailing ancestors survive truncation.
const truncatedTailLength = 2

// Segment is one clickable breadcrumb entry. Every segment is also a drop
// target for drag-and-drop moves.
type Segment struct {
	ID   string
	Name string
}

// Trail is the resolved breadcrumb for a folder: the workspace root segment,
// an optional ellipsis marker, and the visible ancestors in root-to-leaf
// order. Ancestors never include the synthetic "root" folder; that is
// rendered as the workspace-name segment instead.
type Trail struct {
	Root      *Segment
	Truncated bool
	Ancestors []Segment

	// RootFolderID is the id of the synthetic root folder when the path
	// fetch exposed it. Drops on the root segment re-parent into it.
	RootFolderID string
}

type BreadcrumbResolverDependencies struct {
	Workspaces domain.WorkspaceService
	Folders    domain.FolderService
	Notifier   Notifier
}

// BreadcrumbResolver reconstructs the ancestor chain for the current folder.
// The workspace name is fetched once per workspace id and cached; the
// ancestor path is fetched per resolve. The two fetches are independent, so
// the root label can transiently lag behind the ancestor list.
type BreadcrumbResolver struct {
	workspaces domain.WorkspaceService
	folders    domain.FolderService
	notifier   Notifier

	mu              sync.Mutex
	cachedWorkspace string
	cachedName      string
	haveWorkspace   bool
}

func NewBreadcrumbResolver(deps BreadcrumbResolverDependencies) *BreadcrumbResolver {
	return &BreadcrumbResolver{
		workspaces: deps.Workspaces,
		folders:    deps.Folders,
		notifier:   deps.Notifier,
	}
}

// Resolve produces the trail for (workspaceID, folderID) plus the raw
// ancestor chain the trail was built from, root item included, in
// root-to-leaf order. Callers seed the controller's tree arena with the raw
// chain, so one path fetch serves both. An empty folderID means the
// workspace root, which has no ancestors.
//
// A workspace fetch failure surfaces a user-visible notification and leaves
// the root segment empty. A path fetch failure is logged only and falls back
// to an empty ancestor list, so the breadcrumb degrades instead of
// flickering an error into the header on every navigation.
func (r *BreadcrumbResolver) Resolve(ctx context.Context, workspaceID, folderID string) (Trail, []domain.FolderPathItem) {
	trail := Trail{}

	if name, ok := r.workspaceName(ctx, workspaceID); ok {
		trail.Root = &Segment{Name: name}
	}

	if folderID == "" {
		return trail, nil
	}

	items, err := r.folders.GetFolderPath(ctx, folderID)
	if err != nil {
		log.Warn().Err(err).Str("folder_id", folderID).Msg("failed to fetch ancestor path")
		return trail, nil
	}

	ancestors := make([]Segment, 0, len(items))
	for _, item := range items {
		if item.IsRoot() {
			trail.RootFolderID = item.ID
			continue
		}
		ancestors = append(ancestors, Segment{ID: item.ID, Name: item.Name})
	}

	trail.Ancestors = ancestors
	return truncate(trail), items
}

// workspaceName returns the workspace display name, fetching only when the
// workspace id changes. Failures are not cached, so the next resolve retries.
func (r *BreadcrumbResolver) workspaceName(ctx context.Context, workspaceID string) (string, bool) {
	r.mu.Lock()
	if r.haveWorkspace && r.cachedWorkspace == workspaceID {
		name := r.cachedName
		r.mu.Unlock()
		return name, true
	}
	r.mu.Unlock()

	workspace, err := r.workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("failed to fetch workspace for breadcrumb")
		NotifyError(r.notifier, "Workspace unavailable", "Could not load workspace details.")
		return "", false
	}

	r.mu.Lock()
	r.cachedWorkspace = workspaceID
	r.cachedName = workspace.Name
	r.haveWorkspace = true
	r.mu.Unlock()

	return workspace.Name, true
}

// truncate collapses long trails: when the root segment plus the ancestor
// count exceeds maxVisibleSegments, only the last truncatedTailLength
// ancestors stay visible behind an ellipsis marker.
func truncate(trail Trail) Trail {
	visible := len(trail.Ancestors)
	if trail.Root != nil {
		visible++
	}
	if visible <= maxVisibleSegments {
		return trail
	}

	trail.Truncated = true
	trail.Ancestors = trail.Ancestors[len(trail.Ancestors)-truncatedTailLength:]
	return trail
}
