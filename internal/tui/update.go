package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/terracarta/terracarta/internal/browser"
)

type dropResolvedMsg struct {
	outcome browser.DropOutcome
	press   *entryRef
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeTour:
		m.mode = modeBrowse
		return nil

	case modeCreate:
		switch msg.String() {
		case "enter":
			name := m.createInput.Value()
			m.createInput.SetValue("")
			m.mode = modeBrowse
			if name == "" {
				m.controller.SetCreateDialogOpen(false)
				return nil
			}
			return m.createFolderCmd(name)
		case "esc":
			m.createInput.SetValue("")
			m.controller.SetCreateDialogOpen(false)
			m.mode = modeBrowse
			return nil
		default:
			var cmd tea.Cmd
			m.createInput, cmd = m.createInput.Update(msg)
			return cmd
		}

	case modeRename:
		item := m.renameItem()
		if item == nil {
			m.mode = modeBrowse
			return nil
		}
		switch msg.String() {
		case "enter":
			item.Editor.SetValue(m.renameInput.Value())
			m.mode = modeBrowse
			return m.submitRenameCmd(item)
		case "esc":
			item.Editor.Cancel()
			m.mode = modeBrowse
			return nil
		default:
			var cmd tea.Cmd
			m.renameInput, cmd = m.renameInput.Update(msg)
			return cmd
		}

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			ref := m.pendingDelete
			m.pendingDelete = nil
			m.mode = modeBrowse
			return m.deleteCmd(ref)
		case "n", "N", "esc":
			m.pendingDelete = nil
			m.mode = modeBrowse
			return nil
		}
		return nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}

	case "enter":
		if m.loadFailed {
			return m.loadCmd()
		}
		if ref, ok := m.selected(); ok {
			return m.openEntry(ref)
		}

	case "backspace":
		parentID := m.controller.CurrentFolder().ParentFolderID
		if m.controller.Path() != "" && parentID != "" {
			return m.navigateCmd(parentID)
		}

	case "n":
		m.controller.SetCreateDialogOpen(true)
		m.createInput.Focus()
		m.mode = modeCreate

	case "r":
		if ref, ok := m.selected(); ok && ref.kind == browser.KindFolder {
			item, ok := m.listing().folderAt(ref.index)
			if !ok {
				break
			}
			item.BeginRename()
			m.renameTarget = ref.index
			m.renameInput.SetValue(item.Name())
			m.renameInput.CursorEnd()
			m.renameInput.Focus()
			m.mode = modeRename
		}

	case "d":
		if ref, ok := m.selected(); ok {
			r := ref
			m.pendingDelete = &r
			m.mode = modeConfirmDelete
		}

	case "v":
		if m.controller.ViewMode() == browser.ViewList {
			m.controller.SetViewMode(browser.ViewGrid)
		} else {
			m.controller.SetViewMode(browser.ViewList)
		}
		m.rebuildTargets()
	}

	return nil
}

func (m *Model) renameItem() *browser.FolderItem {
	item, ok := m.listing().folderAt(m.renameTarget)
	if !ok {
		return nil
	}
	return item
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ux := float64(msg.X * cellUnitWidth)
	uy := float64(msg.Y * cellUnitHeight)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if ref, ok := m.entryAt(msg.X, msg.Y); ok {
			r := ref
			m.press = &r
			m.cursor = m.entryIndex(ref)
			if source, ok := m.sourceFor(ref); ok {
				m.coordinator.PointerDown(ux, uy, source)
			}
		} else {
			m.press = nil
			if msg.Y == 0 {
				if segment, ok := m.crumbAt(msg.X); ok && segment.nav {
					return m.navigateCmd(segment.navTo)
				}
			}
		}

	case tea.MouseActionMotion:
		m.coordinator.PointerMove(ux, uy)

	case tea.MouseActionRelease:
		press := m.press
		m.press = nil
		ctx := m.ctx
		coordinator := m.coordinator
		return func() tea.Msg {
			outcome := coordinator.PointerUp(ctx, ux, uy)
			return dropResolvedMsg{outcome: outcome, press: press}
		}
	}

	return nil
}

func (m *Model) sourceFor(ref entryRef) (browser.DragSource, bool) {
	l := m.listing()
	if ref.kind == browser.KindFolder {
		if item, ok := l.folderAt(ref.index); ok {
			return item.DragSource(), true
		}
		return browser.DragSource{}, false
	}
	if item, ok := l.mapAt(ref.index); ok {
		return item.DragSource(), true
	}
	return browser.DragSource{}, false
}

func (m *Model) entryIndex(ref entryRef) int {
	if ref.kind == browser.KindFolder {
		return ref.index
	}
	return len(m.listing().folders) + ref.index
}

func (m *Model) openEntry(ref entryRef) tea.Cmd {
	l := m.listing()
	if ref.kind == browser.KindFolder {
		item, ok := l.folderAt(ref.index)
		if !ok {
			return nil
		}
		return m.navigateCmd(item.Folder.ID)
	}

	item, ok := l.mapAt(ref.index)
	if !ok {
		return nil
	}
	mapInfo := item.Map
	browser.NotifyInfo(m.notifier, "Map", mapInfo.Name+" ("+mapInfo.Type+") — open it in the web app to view.")
	return nil
}

func (m *Model) navigateCmd(folderID string) tea.Cmd {
	m.cursor = 0
	return func() tea.Msg {
		err := m.controller.NavigateTo(m.ctx, folderID)
		return contentLoadedMsg{err: err}
	}
}

func (m *Model) createFolderCmd(name string) tea.Cmd {
	return func() tea.Msg {
		_ = m.controller.CreateFolder(m.ctx, name)
		return refreshedMsg{}
	}
}

func (m *Model) submitRenameCmd(item *browser.FolderItem) tea.Cmd {
	return func() tea.Msg {
		_ = item.SubmitRename(m.ctx)
		return refreshedMsg{}
	}
}

// deleteCmd resolves the item on the event loop and captures the pointer, so
// the goroutine never indexes a listing a concurrent refresh may replace.
func (m *Model) deleteCmd(ref *entryRef) tea.Cmd {
	if ref == nil {
		return nil
	}
	l := m.listing()
	if ref.kind == browser.KindFolder {
		item, ok := l.folderAt(ref.index)
		if !ok {
			return nil
		}
		return func() tea.Msg {
			_ = item.Delete(m.ctx)
			return refreshedMsg{}
		}
	}
	item, ok := l.mapAt(ref.index)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		_ = item.Delete(m.ctx)
		return refreshedMsg{}
	}
}
