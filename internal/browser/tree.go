package browser

import (
	"github.com/terracarta/terracarta/internal/domain"
)

// NodeKind identifies what a tree node represents.
type NodeKind int

const (
	KindFolder NodeKind = iota
	KindMap
)

type treeNode struct {
	id       string
	name     string
	kind     NodeKind
	parentID string
}

// Tree is an arena of the folder/map nodes known to the controller, keyed by
// id with parent links. It holds the fetched slice of the workspace tree
// (ancestor chain, current folder, its children and maps), enough to
// validate a move before the network call persists it.
type Tree struct {
	nodes map[string]*treeNode
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*treeNode)}
}

func (t *Tree) upsert(id, name string, kind NodeKind, parentID string) {
	if id == "" {
		return
	}
	t.nodes[id] = &treeNode{id: id, name: name, kind: kind, parentID: parentID}
}

// AddFolder records a folder node and its parent link.
func (t *Tree) AddFolder(f domain.Folder) {
	t.upsert(f.ID, f.Name, KindFolder, f.ParentFolderID)
}

// AddMap records a map node under its folder.
func (t *Tree) AddMap(m domain.MapInfo) {
	t.upsert(m.ID, m.Name, KindMap, m.FolderID)
}

// AddPath records an ancestor chain in root-to-leaf order. Parent links are
// derived from adjacency; the first item keeps any parent already known.
func (t *Tree) AddPath(items []domain.FolderPathItem) {
	for i, item := range items {
		parentID := ""
		if i > 0 {
			parentID = items[i-1].ID
		} else if existing, ok := t.nodes[item.ID]; ok {
			parentID = existing.parentID
		}
		t.upsert(item.ID, item.Name, KindFolder, parentID)
	}
}

// Contains reports whether the node is known to the arena.
func (t *Tree) Contains(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

// IsAncestor reports whether ancestorID appears on id's parent chain. Walks
// only nodes present in the arena; the chain is bounded by the arena size so
// a corrupt parent link cannot loop forever.
func (t *Tree) IsAncestor(ancestorID, id string) bool {
	if ancestorID == "" || id == "" {
		return false
	}
	seen := 0
	current, ok := t.nodes[id]
	for ok && seen <= len(t.nodes) {
		if current.parentID == "" {
			return false
		}
		if current.parentID == ancestorID {
			return true
		}
		current, ok = t.nodes[current.parentID]
		seen++
	}
	return false
}

// WouldCycle reports whether re-parenting folderID under newParentID would
// make the folder its own ancestor. Self-moves count as cycles.
func (t *Tree) WouldCycle(folderID, newParentID string) bool {
	if folderID == newParentID {
		return true
	}
	return folderID != "" && t.IsAncestor(folderID, newParentID)
}

// Move re-parents a folder inside the arena after validating the transition.
// It is a pure in-memory operation; callers persist the transition remotely
// and reconcile with a refresh.
func (t *Tree) Move(folderID, newParentID string) error {
	node, ok := t.nodes[folderID]
	if !ok {
		return domain.ErrFolderNotFound
	}
	if node.kind != KindFolder {
		return domain.ErrFolderNotFound
	}
	if t.WouldCycle(folderID, newParentID) {
		return domain.ErrCycle
	}
	node.parentID = newParentID
	return nil
}
