package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/terracarta/terracarta/internal/browser"
)

const (
	gridTileWidth  = 24
	gridTileGap    = 2
	gridTileHeight = 3
	gridRowGap     = 1
)

var (
	crumbStyle     = lipgloss.NewStyle().Bold(true)
	crumbSepStyle  = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	folderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	toastInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tileStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(gridTileWidth - 2).
			Height(gridTileHeight - 2)
	tileSelectedStyle = tileStyle.BorderForeground(lipgloss.Color("12"))
)

func (m *Model) gridColumns() int {
	stride := gridTileWidth + gridTileGap
	cols := m.width / stride
	if cols < 1 {
		cols = 1
	}
	return cols
}

// entryCellBounds returns the cell rectangle of entry i in the current view
// mode. The same math backs hit testing, drop target registration, and
// rendering.
func (m *Model) entryCellBounds(i int) (x, y, w, h int) {
	if m.controller.ViewMode() == browser.ViewGrid {
		cols := m.gridColumns()
		col := i % cols
		row := i / cols
		return col * (gridTileWidth + gridTileGap),
			contentTop + row*(gridTileHeight+gridRowGap),
			gridTileWidth,
			gridTileHeight
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return 0, contentTop + i, width, 1
}

func (m *Model) entryAt(cx, cy int) (entryRef, bool) {
	refs := m.entries()
	for i, ref := range refs {
		x, y, w, h := m.entryCellBounds(i)
		if cx >= x && cx < x+w && cy >= y && cy < y+h {
			return ref, true
		}
	}
	return entryRef{}, false
}

// rebuildTargets re-registers the drop targets with the coordinator:
// every visible folder entry plus every breadcrumb segment.
func (m *Model) rebuildTargets() {
	var targets []browser.DropTarget

	l := m.listing()
	for i, ref := range l.entries() {
		if ref.kind != browser.KindFolder {
			continue
		}
		x, y, w, h := m.entryCellBounds(i)
		targets = append(targets, browser.DropTarget{
			FolderID: l.folders[ref.index].Folder.ID,
			Bounds:   cellRect(x, y, w, h),
		})
	}

	for _, segment := range m.crumbSegments() {
		if segment.folderID == "" {
			continue
		}
		targets = append(targets, browser.DropTarget{
			FolderID: segment.folderID,
			Bounds:   cellRect(segment.start, 0, segment.width, 1),
		})
	}

	m.coordinator.SetTargets(targets)
}

func cellRect(x, y, w, h int) browser.Rect {
	return browser.Rect{
		X:      float64(x * cellUnitWidth),
		Y:      float64(y * cellUnitHeight),
		Width:  float64(w * cellUnitWidth),
		Height: float64(h * cellUnitHeight),
	}
}

type crumbSegment struct {
	label    string
	folderID string // drop destination; empty means not a drop target
	navTo    string // navigation destination; empty means the workspace root
	nav      bool
	start    int
	width    int
}

// crumbSegments lays out the breadcrumb header and records each segment's
// cell span so segments double as drop targets and click navigation.
func (m *Model) crumbSegments() []crumbSegment {
	var segments []crumbSegment
	pos := 0

	add := func(label, folderID, navTo string, nav bool) {
		segments = append(segments, crumbSegment{
			label:    label,
			folderID: folderID,
			navTo:    navTo,
			nav:      nav,
			start:    pos,
			width:    lipgloss.Width(label),
		})
		pos += lipgloss.Width(label) + 3 // separator " / "
	}

	if m.trail.Root != nil {
		add(m.trail.Root.Name, m.trail.RootFolderID, "", true)
	}
	if m.trail.Truncated {
		add("…", "", "", false)
	}
	for _, ancestor := range m.trail.Ancestors {
		add(ancestor.Name, ancestor.ID, ancestor.ID, true)
	}

	return segments
}

// crumbAt returns the breadcrumb segment spanning column x of the header row.
func (m *Model) crumbAt(x int) (crumbSegment, bool) {
	for _, segment := range m.crumbSegments() {
		if x >= segment.start && x < segment.start+segment.width {
			return segment, true
		}
	}
	return crumbSegment{}, false
}

func (m *Model) View() string {
	var b strings.Builder

	segments := m.crumbSegments()
	if len(segments) == 0 {
		b.WriteString(crumbStyle.Render("…"))
	}
	for i, segment := range segments {
		if i > 0 {
			b.WriteString(crumbSepStyle.Render(" / "))
		}
		b.WriteString(crumbStyle.Render(segment.label))
	}
	b.WriteString("\n\n")

	switch {
	case m.loadFailed:
		b.WriteString(errorStyle.Render("Could not load this folder."))
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("Press enter to retry, q to quit."))
	case m.controller.Loading():
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading…")
	case m.controller.Empty():
		b.WriteString("This folder is empty.\n")
		b.WriteString(faintStyle.Render("Press n to create a folder, or run `terracarta upload` to add your first map."))
	case m.controller.ViewMode() == browser.ViewGrid:
		b.WriteString(m.renderGrid(m.listing()))
	default:
		b.WriteString(m.renderList(m.listing()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderOverlay())
	b.WriteString(m.renderToasts())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("↑/↓ move · enter open · backspace up · n new · r rename · d delete · v view · drag to move · q quit"))

	return b.String()
}

func (m *Model) renderList(l listing) string {
	var rows []string

	for i, ref := range l.entries() {
		label := m.entryLabel(l, ref)
		if i == m.cursor {
			label = selectedStyle.Render(label)
		}
		rows = append(rows, label)
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderGrid(l listing) string {
	cols := m.gridColumns()
	refs := l.entries()

	var rows []string
	for start := 0; start < len(refs); start += cols {
		end := start + cols
		if end > len(refs) {
			end = len(refs)
		}

		var tiles []string
		for i := start; i < end; i++ {
			style := tileStyle
			if i == m.cursor {
				style = tileSelectedStyle
			}
			tiles = append(tiles, style.Render(m.entryLabel(l, refs[i])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) entryLabel(l listing, ref entryRef) string {
	if ref.kind == browser.KindFolder {
		item, ok := l.folderAt(ref.index)
		if !ok {
			return ""
		}
		name := item.Name()
		if m.mode == modeRename && ref.index == m.renameTarget && item.Editor.Active() {
			return folderStyle.Render("▸ ") + m.renameInput.View()
		}
		if item.Deleting() {
			name += faintStyle.Render(" (deleting…)")
		}
		return folderStyle.Render("▸ ") + name
	}

	item, ok := l.mapAt(ref.index)
	if !ok {
		return ""
	}
	name := item.Map.Name
	if item.Deleting() {
		name += faintStyle.Render(" (deleting…)")
	}
	suffix := ""
	if item.Map.Type != "" {
		suffix = faintStyle.Render("  " + item.Map.Type)
	}
	return "  " + name + suffix
}

func (m *Model) renderOverlay() string {
	switch m.mode {
	case modeCreate:
		return "New folder: " + m.createInput.View() + faintStyle.Render("  (enter to create, esc to cancel)") + "\n"
	case modeConfirmDelete:
		if m.pendingDelete != nil {
			name := m.pendingDeleteName()
			return errorStyle.Render(fmt.Sprintf("Delete %q? This cannot be undone.", name)) + faintStyle.Render("  (y/n)") + "\n"
		}
	case modeTour:
		tour := lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 2).
			Render("Welcome to your workspace!\n\n" +
				"Folders keep your maps organized. Drag an entry onto a\n" +
				"folder or a breadcrumb segment to move it, and press n\n" +
				"to create your first folder.\n\n" +
				"Press any key to start browsing.")
		return tour + "\n"
	}
	return ""
}

func (m *Model) pendingDeleteName() string {
	l := m.listing()
	if m.pendingDelete.kind == browser.KindFolder {
		if item, ok := l.folderAt(m.pendingDelete.index); ok {
			return item.Name()
		}
	} else if item, ok := l.mapAt(m.pendingDelete.index); ok {
		return item.Map.Name
	}
	return ""
}

func (m *Model) renderToasts() string {
	var b strings.Builder
	for _, toast := range m.toasts {
		style := toastInfoStyle
		if toast.Kind == browser.NotificationError {
			style = errorStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s — %s", toast.Title, toast.Message)))
		b.WriteString("\n")
	}
	return b.String()
}
