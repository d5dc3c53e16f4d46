package browser

import (
	"context"
	"errors"
	"sync"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/internal/session"
)

// fakeBackend is an in-memory stand-in for the remote store. Counters track
// which requests the components actually issued.
type fakeBackend struct {
	mu sync.Mutex

	workspace domain.Workspace
	contents  map[string]domain.FolderContent // keyed by folder id, "" = root
	paths     map[string][]domain.FolderPathItem
	versions  map[string]domain.Version

	workspaceErr error
	pathErr      error
	contentErr   error
	moveErr      error
	renameErr    error
	deleteErr    error

	fetchCount     int
	pathCount      int
	workspaceCount int
	versionCount   int

	folderMoves []domain.MoveFolderParams
	mapMoves    []domain.MoveMapParams
	renames     []domain.RenameFolderParams
	deleted     []string
	created     []domain.CreateFolderParams
	uploads     []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1", Name: "Atlas Team"},
		contents:  map[string]domain.FolderContent{},
		paths:     map[string][]domain.FolderPathItem{},
		versions:  map[string]domain.Version{},
	}
}

func (f *fakeBackend) GetWorkspace(ctx context.Context, workspaceID string) (domain.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspaceCount++
	if f.workspaceErr != nil {
		return domain.Workspace{}, f.workspaceErr
	}
	return f.workspace, nil
}

func (f *fakeBackend) GetWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	return []domain.Workspace{f.workspace}, nil
}

func (f *fakeBackend) GetFolder(ctx context.Context, folderID string) (domain.FolderContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCount++
	if f.contentErr != nil {
		return domain.FolderContent{}, f.contentErr
	}
	content, ok := f.contents[folderID]
	if !ok {
		return domain.FolderContent{}, domain.ErrFolderNotFound
	}
	return content, nil
}

func (f *fakeBackend) GetWorkspaceRootContent(ctx context.Context, workspaceID string) (domain.FolderContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCount++
	if f.contentErr != nil {
		return domain.FolderContent{}, f.contentErr
	}
	return f.contents[""], nil
}

func (f *fakeBackend) GetFolderPath(ctx context.Context, folderID string) ([]domain.FolderPathItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pathCount++
	if f.pathErr != nil {
		return nil, f.pathErr
	}
	return f.paths[folderID], nil
}

func (f *fakeBackend) CreateFolder(ctx context.Context, params domain.CreateFolderParams) (domain.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, params)
	return domain.Folder{ID: "created-1", Name: params.Name, ParentFolderID: params.ParentFolderID}, nil
}

func (f *fakeBackend) MoveFolder(ctx context.Context, params domain.MoveFolderParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.folderMoves = append(f.folderMoves, params)
	return nil
}

func (f *fakeBackend) RenameFolder(ctx context.Context, params domain.RenameFolderParams) (domain.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renameErr != nil {
		return domain.Folder{}, f.renameErr
	}
	f.renames = append(f.renames, params)
	return domain.Folder{ID: params.FolderID, Name: params.NewName}, nil
}

func (f *fakeBackend) DeleteFolder(ctx context.Context, folderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, folderID)
	return nil
}

func (f *fakeBackend) MoveMap(ctx context.Context, params domain.MoveMapParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.mapMoves = append(f.mapMoves, params)
	return nil
}

func (f *fakeBackend) DeleteMap(ctx context.Context, mapID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, mapID)
	return nil
}

func (f *fakeBackend) UploadMap(ctx context.Context, params domain.UploadMapParams) (domain.MapUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, params.Name)
	return domain.MapUpload{MapID: "map-new", VersionID: "version-new"}, nil
}

func (f *fakeBackend) GetVersion(ctx context.Context, versionID string) (domain.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versionCount++
	version, ok := f.versions[versionID]
	if !ok {
		return domain.Version{}, errors.New("version not found")
	}
	return version, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func (n *recordingNotifier) Notify(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notifications)
}

// fakeSession implements SessionState in memory.
type fakeSession struct {
	valid       bool
	tourPending bool
	intent      *session.NavigationIntent
}

func (s *fakeSession) HasValidToken() bool { return s.valid }

func (s *fakeSession) SetIntent(intent session.NavigationIntent) error {
	s.intent = &intent
	return nil
}

func (s *fakeSession) TourPending() bool { return s.tourPending }

func (s *fakeSession) ClearTourPending() { s.tourPending = false }

// workspaceFixture seeds a small tree:
//
//	root (folder-root)
//	├── Surveys (folder-a)
//	│   └── 2024 (folder-b)
//	└── coastline.gpkg (map-1)
func workspaceFixture() *fakeBackend {
	backend := newFakeBackend()

	root := domain.Folder{ID: "folder-root", Name: "root", WorkspaceID: "ws-1"}
	folderA := domain.Folder{ID: "folder-a", Name: "Surveys", ParentFolderID: "folder-root", WorkspaceID: "ws-1"}
	folderB := domain.Folder{ID: "folder-b", Name: "2024", ParentFolderID: "folder-a", WorkspaceID: "ws-1"}
	map1 := domain.MapInfo{ID: "map-1", Name: "coastline.gpkg", Type: "geopackage", FolderID: "folder-root", VersionID: "version-1"}

	backend.contents[""] = domain.FolderContent{
		Folder:       root,
		ChildFolders: []domain.Folder{folderA},
		Maps:         []domain.MapInfo{map1},
	}
	backend.contents["folder-a"] = domain.FolderContent{
		Folder:       folderA,
		ChildFolders: []domain.Folder{folderB},
	}
	backend.contents["folder-b"] = domain.FolderContent{
		Folder: folderB,
	}

	backend.paths["folder-a"] = []domain.FolderPathItem{
		{ID: "folder-root", Name: "root"},
		{ID: "folder-a", Name: "Surveys"},
	}
	backend.paths["folder-b"] = []domain.FolderPathItem{
		{ID: "folder-root", Name: "root"},
		{ID: "folder-a", Name: "Surveys"},
		{ID: "folder-b", Name: "2024"},
	}

	return backend
}
