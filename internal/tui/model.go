// Package tui implements the interactive workspace browser: a breadcrumb
// header, a list or grid of folders and maps, mouse drag-and-drop for moving
// entries, and inline dialogs for create, rename and delete.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/terracarta/terracarta/internal/browser"
	"github.com/terracarta/terracarta/internal/domain"
)

// Terminal cells are mapped to pointer units so the drag activation
// threshold keeps its meaning: one cell is 8 units wide and 16 tall, so a
// drag activates after roughly four columns or two rows of travel.
const (
	cellUnitWidth  = 8
	cellUnitHeight = 16
)

// contentTop is the first content row: breadcrumb header plus one blank row.
const contentTop = 2

const toastLifetime = 4 * time.Second

type uiMode int

const (
	modeBrowse uiMode = iota
	modeCreate
	modeRename
	modeConfirmDelete
	modeTour
)

// toastNotifier collects notifications emitted from command goroutines; the
// model drains it on every update.
type toastNotifier struct {
	mu      sync.Mutex
	pending []browser.Notification
}

func (n *toastNotifier) Notify(notification browser.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, notification)
}

func (n *toastNotifier) drain() []browser.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	pending := n.pending
	n.pending = nil
	return pending
}

type entryRef struct {
	kind  browser.NodeKind
	index int
}

type Model struct {
	ctx context.Context

	controller  *browser.Controller
	resolver    *browser.BreadcrumbResolver
	coordinator *browser.Coordinator
	notifier    *toastNotifier

	trail browser.Trail

	width  int
	height int

	mode         uiMode
	cursor       int
	loadFailed   bool
	authRequired bool

	spinner     spinner.Model
	renameInput textinput.Model
	createInput textinput.Model

	pendingDelete *entryRef
	renameTarget  int

	// press tracks the entry under the pointer at mouse-down so a release
	// below the drag threshold can resolve to a click on it.
	press *entryRef

	toasts []browser.Notification
}

type ModelDependencies struct {
	Workspaces domain.WorkspaceService
	Folders    domain.FolderService
	Maps       domain.MapService
	Session    browser.SessionState
}

func NewModel(ctx context.Context, workspaceID, path string, deps ModelDependencies) *Model {
	notifier := &toastNotifier{}

	controller := browser.NewController(workspaceID, path, browser.ControllerDependencies{
		Workspaces: deps.Workspaces,
		Folders:    deps.Folders,
		Maps:       deps.Maps,
		Session:    deps.Session,
		Notifier:   notifier,
	})

	resolver := browser.NewBreadcrumbResolver(browser.BreadcrumbResolverDependencies{
		Workspaces: deps.Workspaces,
		Folders:    deps.Folders,
		Notifier:   notifier,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renameInput := textinput.New()
	renameInput.CharLimit = 120
	createInput := textinput.New()
	createInput.Placeholder = "Folder name"
	createInput.CharLimit = 120

	return &Model{
		ctx:         ctx,
		controller:  controller,
		resolver:    resolver,
		coordinator: controller.NewCoordinator(),
		notifier:    notifier,
		spinner:     sp,
		renameInput: renameInput,
		createInput: createInput,
	}
}

type contentLoadedMsg struct{ err error }

type refreshedMsg struct{}

type trailMsg struct {
	trail browser.Trail
	path  []domain.FolderPathItem
}

type toastExpiredMsg struct{ id string }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.controller.Load(m.ctx)
		return contentLoadedMsg{err: err}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.controller.Refresh(m.ctx); err != nil {
			log.Warn().Err(err).Msg("refresh failed")
		}
		return refreshedMsg{}
	}
}

// trailCmd recomputes the breadcrumb, keyed on the current folder id. The
// raw path also seeds the controller's tree arena for descendant checks.
func (m *Model) trailCmd() tea.Cmd {
	workspaceID := m.controller.WorkspaceID()
	folderID := m.controller.Path()
	return func() tea.Msg {
		trail, path := m.resolver.Resolve(m.ctx, workspaceID, folderID)
		return trailMsg{trail: trail, path: path}
	}
}

func (m *Model) expireToastCmd(id string) tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTargets()

	case contentLoadedMsg:
		if msg.err != nil {
			m.loadFailed = true
			if msg.err == domain.ErrAuthRequired {
				m.authRequired = true
				return m, tea.Quit
			}
		} else {
			m.loadFailed = false
			m.clampCursor()
			m.rebuildTargets()
			if m.controller.ShouldShowTour() {
				m.mode = modeTour
			}
			cmds = append(cmds, m.trailCmd())
		}

	case refreshedMsg:
		m.clampCursor()
		m.rebuildTargets()
		cmds = append(cmds, m.trailCmd())

	case trailMsg:
		m.trail = msg.trail
		if msg.path != nil {
			m.controller.SeedAncestors(msg.path)
		}
		m.rebuildTargets()

	case toastExpiredMsg:
		m.dropToast(msg.id)

	case dropResolvedMsg:
		switch msg.outcome {
		case browser.DropNone:
			// Below the activation threshold the release is a click.
			if msg.press != nil {
				cmds = append(cmds, m.openEntry(*msg.press))
			}
		case browser.DropMoved:
			m.clampCursor()
			m.rebuildTargets()
			cmds = append(cmds, m.trailCmd())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if cmd := m.handleMouse(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	for _, n := range m.notifier.drain() {
		m.toasts = append(m.toasts, n)
		cmds = append(cmds, m.expireToastCmd(n.ID))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) dropToast(id string) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// listing is one consistent snapshot of the controller's folder and map
// items. Every render and input handler indexes into a single snapshot so a
// concurrent refresh cannot invalidate an index mid-operation.
type listing struct {
	folders []*browser.FolderItem
	maps    []*browser.MapItem
}

func (m *Model) listing() listing {
	folders, maps := m.controller.Listing()
	return listing{folders: folders, maps: maps}
}

func (l listing) entries() []entryRef {
	refs := make([]entryRef, 0, len(l.folders)+len(l.maps))
	for i := range l.folders {
		refs = append(refs, entryRef{kind: browser.KindFolder, index: i})
	}
	for i := range l.maps {
		refs = append(refs, entryRef{kind: browser.KindMap, index: i})
	}
	return refs
}

func (l listing) folderAt(i int) (*browser.FolderItem, bool) {
	if i < 0 || i >= len(l.folders) {
		return nil, false
	}
	return l.folders[i], true
}

func (l listing) mapAt(i int) (*browser.MapItem, bool) {
	if i < 0 || i >= len(l.maps) {
		return nil, false
	}
	return l.maps[i], true
}

func (m *Model) entries() []entryRef {
	return m.listing().entries()
}

func (m *Model) clampCursor() {
	count := len(m.entries())
	if count == 0 {
		m.cursor = 0
	} else if m.cursor >= count {
		m.cursor = count - 1
	}
}

func (m *Model) selected() (entryRef, bool) {
	refs := m.entries()
	if len(refs) == 0 || m.cursor >= len(refs) {
		return entryRef{}, false
	}
	return refs[m.cursor], true
}
