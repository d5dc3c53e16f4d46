package browser

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/domain"
)

// ViewMode selects how entries are laid out. Both modes render the same
// entities with identical interaction behavior.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

type ItemDependencies struct {
	Folders  domain.FolderService
	Maps     domain.MapService
	Notifier Notifier

	// OnDelete is invoked after a confirmed delete succeeds so the parent
	// can refresh its listing. Items never mutate the parent's state
	// directly.
	OnDelete func(ctx context.Context)
}

// FolderItem is the interaction state for one folder entry. It is both a
// drag source and a drop target; the transient rename editor and the
// delete-in-flight flag are owned here, not by the controller. Mutations run
// in command goroutines while the render loop reads, so the mutable fields
// sit behind a mutex.
type FolderItem struct {
	Folder domain.Folder
	Editor RenameEditor

	deps       ItemDependencies
	mu         sync.Mutex
	isDeleting bool
}

func NewFolderItem(folder domain.Folder, deps ItemDependencies) *FolderItem {
	return &FolderItem{Folder: folder, deps: deps}
}

// DragSource returns the payload this item contributes to a drag gesture.
func (it *FolderItem) DragSource() DragSource {
	return DragSource{Kind: KindFolder, ID: it.Folder.ID}
}

// Name returns the display name, reflecting a successful rename before the
// next refresh lands.
func (it *FolderItem) Name() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.Folder.Name
}

// BeginRename switches the label to an inline input prefilled with the
// current name.
func (it *FolderItem) BeginRename() {
	it.Editor.Begin(it.Name())
}

// SubmitRename commits the edit. An unchanged (trimmed) value issues no
// request and simply exits edit mode. On success the local display name is
// updated; on failure it reverts and a notification is shown.
func (it *FolderItem) SubmitRename(ctx context.Context) error {
	name, changed := it.Editor.Take()
	if !changed {
		return nil
	}

	updated, err := it.deps.Folders.RenameFolder(ctx, domain.RenameFolderParams{
		FolderID: it.Folder.ID,
		NewName:  name,
	})
	if err != nil {
		log.Error().Err(err).Str("folder_id", it.Folder.ID).Msg("failed to rename folder")
		NotifyError(it.deps.Notifier, "Rename failed", "The folder could not be renamed.")
		return err
	}

	it.mu.Lock()
	it.Folder.Name = updated.Name
	it.mu.Unlock()
	return nil
}

// Deleting reports whether a delete request is in flight for this item.
func (it *FolderItem) Deleting() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.isDeleting
}

// Delete removes the folder after the caller has confirmed the action. The
// in-flight flag disables repeat triggers; the entry is only removed from
// the listing once the parent refreshes after server confirmation.
func (it *FolderItem) Delete(ctx context.Context) error {
	it.mu.Lock()
	if it.isDeleting {
		it.mu.Unlock()
		return nil
	}
	it.isDeleting = true
	it.mu.Unlock()
	defer func() {
		it.mu.Lock()
		it.isDeleting = false
		it.mu.Unlock()
	}()

	if err := it.deps.Folders.DeleteFolder(ctx, it.Folder.ID); err != nil {
		log.Error().Err(err).Str("folder_id", it.Folder.ID).Msg("failed to delete folder")
		NotifyError(it.deps.Notifier, "Delete failed", "The folder could not be deleted.")
		return err
	}

	if it.deps.OnDelete != nil {
		it.deps.OnDelete(ctx)
	}
	return nil
}

// MapItem is the interaction state for one map file entry.
type MapItem struct {
	Map domain.MapInfo

	deps       ItemDependencies
	mu         sync.Mutex
	isDeleting bool
}

func NewMapItem(m domain.MapInfo, deps ItemDependencies) *MapItem {
	return &MapItem{Map: m, deps: deps}
}

// DragSource returns the payload this item contributes to a drag gesture.
func (it *MapItem) DragSource() DragSource {
	return DragSource{Kind: KindMap, ID: it.Map.ID}
}

// Deleting reports whether a delete request is in flight for this item.
func (it *MapItem) Deleting() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.isDeleting
}

// Delete removes the map after the caller has confirmed the action.
func (it *MapItem) Delete(ctx context.Context) error {
	it.mu.Lock()
	if it.isDeleting {
		it.mu.Unlock()
		return nil
	}
	it.isDeleting = true
	it.mu.Unlock()
	defer func() {
		it.mu.Lock()
		it.isDeleting = false
		it.mu.Unlock()
	}()

	if err := it.deps.Maps.DeleteMap(ctx, it.Map.ID); err != nil {
		log.Error().Err(err).Str("map_id", it.Map.ID).Msg("failed to delete map")
		NotifyError(it.deps.Notifier, "Delete failed", "The map could not be deleted.")
		return err
	}

	if it.deps.OnDelete != nil {
		it.deps.OnDelete(ctx)
	}
	return nil
}
