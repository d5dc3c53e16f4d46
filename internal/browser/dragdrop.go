package browser

import (
	"context"
	"math"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/domain"
)

// ActivationDistance is how far the pointer must travel from the press
// position before a drag starts. Below it a press-and-release stays a plain
// click, so opening a folder never turns into an accidental move.
const ActivationDistance = 32.0

// DragSource is the entity a gesture carries.
type DragSource struct {
	Kind NodeKind
	ID   string
}

// Rect is a drop target's bounds in pointer coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies within the bounds.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// DropTarget is a registered drag-and-drop destination. Only folders (and
// breadcrumb segments, which stand for folders) accept drops.
type DropTarget struct {
	FolderID string
	Bounds   Rect
}

// DropOutcome describes how a released gesture resolved.
type DropOutcome int

const (
	// DropNone: the gesture never activated; the release is a click.
	DropNone DropOutcome = iota
	// DropIgnored: active drag released outside any target, onto the
	// source itself, or with an unsupported source/target pairing.
	DropIgnored
	// DropRejected: the move was refused client-side (descendant cycle).
	DropRejected
	// DropMoved: a move request was issued and succeeded.
	DropMoved
	// DropFailed: a move request was issued and failed.
	DropFailed
)

type gesture struct {
	id      string
	source  DragSource
	originX float64
	originY float64
	active  bool
}

// cycleValidator answers whether re-parenting a folder would make it its own
// ancestor. The controller's tree arena implements it.
type cycleValidator interface {
	WouldCycle(folderID, newParentID string) bool
}

type CoordinatorDependencies struct {
	Folders   domain.FolderService
	Maps      domain.MapService
	Validator cycleValidator
	Notifier  Notifier
	OnMoved   func(ctx context.Context)
}

// Coordinator owns the global drag-and-drop policy: when a gesture becomes
// a drag, which target a release lands on, and what a drop means.
type Coordinator struct {
	folders   domain.FolderService
	maps      domain.MapService
	validator cycleValidator
	notifier  Notifier
	onMoved   func(ctx context.Context)

	targets []DropTarget
	current *gesture
}

func NewCoordinator(deps CoordinatorDependencies) *Coordinator {
	return &Coordinator{
		folders:   deps.Folders,
		maps:      deps.Maps,
		validator: deps.Validator,
		notifier:  deps.Notifier,
		onMoved:   deps.OnMoved,
	}
}

// SetTargets replaces the registered drop targets. The UI calls this after
// every layout pass so bounds track what is actually on screen.
func (c *Coordinator) SetTargets(targets []DropTarget) {
	c.targets = targets
}

// TargetAt returns the first registered target whose bounds contain the
// pointer. When targets overlap, registration order decides.
func (c *Coordinator) TargetAt(x, y float64) (DropTarget, bool) {
	for _, target := range c.targets {
		if target.Bounds.Contains(x, y) {
			return target, true
		}
	}
	return DropTarget{}, false
}

// PointerDown begins a pending gesture. Nothing is dragged yet; the gesture
// activates only once the pointer clears ActivationDistance.
func (c *Coordinator) PointerDown(x, y float64, source DragSource) {
	c.current = &gesture{
		id:      xid.New().String(),
		source:  source,
		originX: x,
		originY: y,
	}
}

// PointerMove updates the pending gesture and reports whether a drag is now
// active.
func (c *Coordinator) PointerMove(x, y float64) bool {
	if c.current == nil {
		return false
	}
	if !c.current.active {
		dist := math.Hypot(x-c.current.originX, y-c.current.originY)
		if dist >= ActivationDistance {
			c.current.active = true
			log.Debug().Str("gesture_id", c.current.id).Msg("drag activated")
		}
	}
	return c.current.active
}

// Dragging reports whether an activated drag gesture is in flight.
func (c *Coordinator) Dragging() bool {
	return c.current != nil && c.current.active
}

// Source returns the entity carried by the in-flight gesture.
func (c *Coordinator) Source() (DragSource, bool) {
	if c.current == nil {
		return DragSource{}, false
	}
	return c.current.source, true
}

// PointerUp ends the gesture. A gesture that never activated resolves to
// DropNone so the caller can treat the release as a click. An active drag
// resolves against the target under the pointer.
func (c *Coordinator) PointerUp(ctx context.Context, x, y float64) DropOutcome {
	g := c.current
	c.current = nil

	if g == nil || !g.active {
		return DropNone
	}

	target, ok := c.TargetAt(x, y)
	if !ok {
		return DropIgnored
	}

	return c.resolveDrop(ctx, g.source, target.FolderID)
}

// resolveDrop applies the drop table: map onto folder re-parents the map,
// folder onto folder re-parents the folder. A folder dropped onto itself is
// a silent no-op; a folder dropped into its own descendant is refused before
// any request is issued.
func (c *Coordinator) resolveDrop(ctx context.Context, source DragSource, targetFolderID string) DropOutcome {
	switch source.Kind {
	case KindMap:
		err := c.maps.MoveMap(ctx, domain.MoveMapParams{
			MapID:    source.ID,
			FolderID: targetFolderID,
		})
		if err != nil {
			log.Error().Err(err).Str("map_id", source.ID).Msg("failed to move map")
			NotifyError(c.notifier, "Move failed", "The map could not be moved.")
			return DropFailed
		}

	case KindFolder:
		if source.ID == targetFolderID {
			return DropIgnored
		}
		if c.validator != nil && c.validator.WouldCycle(source.ID, targetFolderID) {
			NotifyError(c.notifier, "Move rejected", "A folder cannot be moved into one of its own subfolders.")
			return DropRejected
		}
		err := c.folders.MoveFolder(ctx, domain.MoveFolderParams{
			FolderID:    source.ID,
			NewParentID: targetFolderID,
		})
		if err != nil {
			log.Error().Err(err).Str("folder_id", source.ID).Msg("failed to move folder")
			NotifyError(c.notifier, "Move failed", "The folder could not be moved.")
			return DropFailed
		}

	default:
		return DropIgnored
	}

	if c.onMoved != nil {
		c.onMoved(ctx)
	}
	return DropMoved
}
