package browser

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracarta/terracarta/internal/domain"
)

func newTestController(backend *fakeBackend, sess *fakeSession, notifier *recordingNotifier) *Controller {
	return NewController("ws-1", "", ControllerDependencies{
		Workspaces: backend,
		Folders:    backend,
		Maps:       backend,
		Session:    sess,
		Notifier:   notifier,
	})
}

func TestControllerLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the workspace root", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})

		require.NoError(t, controller.Load(ctx))

		assert.Equal(t, "folder-root", controller.CurrentFolder().ID)
		require.Len(t, controller.Folders(), 1)
		assert.Equal(t, "Surveys", controller.Folders()[0].Folder.Name)
		require.Len(t, controller.Maps(), 1)
		assert.Equal(t, "coastline.gpkg", controller.Maps()[0].Map.Name)
		assert.False(t, controller.Empty())
		assert.False(t, controller.Loading())
	})

	t.Run("without a valid session records the intent", func(t *testing.T) {
		backend := workspaceFixture()
		sess := &fakeSession{valid: false}
		controller := NewController("ws-1", "folder-b", ControllerDependencies{
			Workspaces: backend,
			Folders:    backend,
			Maps:       backend,
			Session:    sess,
			Notifier:   &recordingNotifier{},
		})

		err := controller.Load(ctx)

		require.ErrorIs(t, err, domain.ErrAuthRequired)
		require.NotNil(t, sess.intent)
		assert.Equal(t, "ws-1", sess.intent.WorkspaceID)
		assert.Equal(t, "folder-b", sess.intent.Path)
		assert.Zero(t, backend.fetchCount, "no content fetch before login")
	})

	t.Run("fetch failure notifies", func(t *testing.T) {
		backend := workspaceFixture()
		backend.contentErr = domain.ErrFolderNotFound
		notifier := &recordingNotifier{}
		controller := newTestController(backend, &fakeSession{valid: true}, notifier)

		require.Error(t, controller.Load(ctx))
		assert.Equal(t, 1, notifier.count())
		assert.False(t, controller.Empty(), "a failed load is not an empty folder")
	})

	t.Run("empty folder reports empty only after loading", func(t *testing.T) {
		backend := workspaceFixture()
		controller := NewController("ws-1", "folder-b", ControllerDependencies{
			Workspaces: backend,
			Folders:    backend,
			Maps:       backend,
			Session:    &fakeSession{valid: true},
			Notifier:   &recordingNotifier{},
		})

		assert.False(t, controller.Empty())
		require.NoError(t, controller.Load(ctx))
		assert.True(t, controller.Empty())
	})
}

func TestControllerRefreshAfterMutation(t *testing.T) {
	ctx := context.Background()

	t.Run("create folder refreshes the listing", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
		require.NoError(t, controller.Load(ctx))
		before := backend.fetchCount

		require.NoError(t, controller.CreateFolder(ctx, "New Folder"))

		require.Len(t, backend.created, 1)
		assert.Equal(t, "folder-root", backend.created[0].ParentFolderID)
		assert.Equal(t, before+1, backend.fetchCount)
		assert.False(t, controller.CreateDialogOpen())
	})

	t.Run("upload refreshes and targets the current folder", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
		require.NoError(t, controller.Load(ctx))
		before := backend.fetchCount

		upload, err := controller.Upload(ctx, domain.UploadMapParams{
			Name:   "parcels.gpkg",
			Reader: strings.NewReader("data"),
		})

		require.NoError(t, err)
		assert.Equal(t, "version-new", upload.VersionID)
		assert.Equal(t, []string{"parcels.gpkg"}, backend.uploads)
		assert.Equal(t, before+1, backend.fetchCount)
	})

	t.Run("drop move refreshes through the coordinator", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
		require.NoError(t, controller.Load(ctx))
		before := backend.fetchCount

		coordinator := controller.NewCoordinator()
		coordinator.SetTargets([]DropTarget{
			{FolderID: "folder-a", Bounds: Rect{X: 0, Y: 0, Width: 400, Height: 400}},
		})
		coordinator.PointerDown(10, 10, DragSource{Kind: KindMap, ID: "map-1"})
		coordinator.PointerMove(200, 200)
		outcome := coordinator.PointerUp(ctx, 200, 200)

		assert.Equal(t, DropMoved, outcome)
		require.Len(t, backend.mapMoves, 1)
		assert.Equal(t, before+1, backend.fetchCount)
	})

	t.Run("item delete refreshes through the callback", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
		require.NoError(t, controller.Load(ctx))
		before := backend.fetchCount

		require.NoError(t, controller.Maps()[0].Delete(ctx))

		assert.Equal(t, []string{"map-1"}, backend.deleted)
		assert.Equal(t, before+1, backend.fetchCount)
	})
}

// Run with -race: command goroutines refresh while the render loop reads.
func TestControllerConcurrentRefreshAndRead(t *testing.T) {
	ctx := context.Background()
	backend := workspaceFixture()
	controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
	require.NoError(t, controller.Load(ctx))

	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = controller.Refresh(ctx)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			folders, maps := controller.Listing()
			for _, item := range folders {
				_ = item.Folder.Name
			}
			for _, item := range maps {
				_ = item.Map.Name
			}
			_ = controller.Loading()
			_ = controller.CurrentFolder()
			_ = controller.Empty()
			_ = controller.ViewMode()
		}
	}()

	wg.Wait()

	folders, maps := controller.Listing()
	assert.Len(t, folders, 1)
	assert.Len(t, maps, 1)
}

func TestControllerListingSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := workspaceFixture()
	controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
	require.NoError(t, controller.Load(ctx))

	folders, maps := controller.Listing()
	require.Len(t, folders, 1)
	require.Len(t, maps, 1)
	assert.Equal(t, "Surveys", folders[0].Folder.Name)
	assert.Equal(t, "coastline.gpkg", maps[0].Map.Name)

	// A refresh replaces the controller's slices but not the snapshot.
	require.NoError(t, controller.Refresh(ctx))
	assert.Equal(t, "Surveys", folders[0].Folder.Name)
}

func TestControllerCycleValidation(t *testing.T) {
	ctx := context.Background()
	backend := workspaceFixture()
	controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
	require.NoError(t, controller.Load(ctx))

	// Seed the ancestor chain the breadcrumb would provide.
	controller.SeedAncestors([]domain.FolderPathItem{
		{ID: "folder-root", Name: "root"},
	})

	assert.True(t, controller.WouldCycle("folder-a", "folder-a"))
	assert.True(t, controller.WouldCycle("folder-root", "folder-a"))
	assert.False(t, controller.WouldCycle("folder-a", "folder-root"))
}

func TestControllerNavigateTo(t *testing.T) {
	ctx := context.Background()
	backend := workspaceFixture()
	controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
	require.NoError(t, controller.Load(ctx))

	require.NoError(t, controller.NavigateTo(ctx, "folder-a"))

	assert.Equal(t, "folder-a", controller.Path())
	assert.Equal(t, "Surveys", controller.CurrentFolder().Name)
	require.Len(t, controller.Folders(), 1)
	assert.Equal(t, "2024", controller.Folders()[0].Folder.Name)

	// Back to the root via the empty id.
	require.NoError(t, controller.NavigateTo(ctx, ""))
	assert.Equal(t, "folder-root", controller.CurrentFolder().ID)
}

func TestControllerViewModeParity(t *testing.T) {
	ctx := context.Background()
	backend := workspaceFixture()
	controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
	require.NoError(t, controller.Load(ctx))

	assert.Equal(t, ViewList, controller.ViewMode())
	listFolders := controller.Folders()
	listMaps := controller.Maps()

	controller.SetViewMode(ViewGrid)

	assert.Equal(t, ViewGrid, controller.ViewMode())
	assert.Equal(t, listFolders, controller.Folders(), "layout changes must not touch the entries")
	assert.Equal(t, listMaps, controller.Maps())
}

func TestControllerShouldShowTour(t *testing.T) {
	ctx := context.Background()

	t.Run("fires once after load when armed", func(t *testing.T) {
		backend := workspaceFixture()
		sess := &fakeSession{valid: true, tourPending: true}
		controller := newTestController(backend, sess, &recordingNotifier{})

		assert.False(t, controller.ShouldShowTour(), "not before the first load")

		require.NoError(t, controller.Load(ctx))
		assert.True(t, controller.ShouldShowTour())
		assert.False(t, sess.tourPending, "the flag is consumed")
		assert.False(t, controller.ShouldShowTour(), "one-shot")
	})

	t.Run("never fires when not armed", func(t *testing.T) {
		backend := workspaceFixture()
		controller := newTestController(backend, &fakeSession{valid: true}, &recordingNotifier{})
		require.NoError(t, controller.Load(ctx))

		assert.False(t, controller.ShouldShowTour())
	})
}
