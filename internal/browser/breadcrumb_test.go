package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracarta/terracarta/internal/domain"
)

func pathOfDepth(depth int) []domain.FolderPathItem {
	items := []domain.FolderPathItem{{ID: "folder-root", Name: "root"}}
	for i := 1; i <= depth; i++ {
		items = append(items, domain.FolderPathItem{
			ID:   fmt.Sprintf("folder-%d", i),
			Name: fmt.Sprintf("Level %d", i),
		})
	}
	return items
}

func TestBreadcrumbResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("workspace root has no ancestors and no path fetch", func(t *testing.T) {
		backend := workspaceFixture()
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   &recordingNotifier{},
		})

		trail, path := resolver.Resolve(ctx, "ws-1", "")

		require.NotNil(t, trail.Root)
		assert.Equal(t, "Atlas Team", trail.Root.Name)
		assert.Empty(t, trail.Ancestors)
		assert.False(t, trail.Truncated)
		assert.Nil(t, path)
		assert.Zero(t, backend.pathCount)
	})

	t.Run("root path item is filtered and its id captured", func(t *testing.T) {
		backend := workspaceFixture()
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   &recordingNotifier{},
		})

		trail, path := resolver.Resolve(ctx, "ws-1", "folder-b")

		require.Len(t, trail.Ancestors, 2)
		assert.Equal(t, "Surveys", trail.Ancestors[0].Name)
		assert.Equal(t, "2024", trail.Ancestors[1].Name)
		assert.Equal(t, "folder-root", trail.RootFolderID)
		assert.False(t, trail.Truncated)

		// The raw chain keeps the root item for arena seeding.
		require.Len(t, path, 3)
		assert.Equal(t, "folder-root", path[0].ID)
	})

	t.Run("one path fetch serves trail and raw chain", func(t *testing.T) {
		backend := workspaceFixture()
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   &recordingNotifier{},
		})

		_, path := resolver.Resolve(ctx, "ws-1", "folder-b")

		require.NotNil(t, path)
		assert.Equal(t, 1, backend.pathCount)
	})

	t.Run("workspace fetch failure notifies and leaves root empty", func(t *testing.T) {
		backend := workspaceFixture()
		backend.workspaceErr = errors.New("boom")
		notifier := &recordingNotifier{}
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   notifier,
		})

		trail, _ := resolver.Resolve(ctx, "ws-1", "folder-b")

		assert.Nil(t, trail.Root)
		assert.Equal(t, 1, notifier.count())
		// Ancestors still resolve; the two fetches are independent.
		assert.Len(t, trail.Ancestors, 2)
	})

	t.Run("path fetch failure degrades silently to empty ancestors", func(t *testing.T) {
		backend := workspaceFixture()
		backend.pathErr = errors.New("boom")
		notifier := &recordingNotifier{}
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   notifier,
		})

		trail, path := resolver.Resolve(ctx, "ws-1", "folder-b")

		require.NotNil(t, trail.Root)
		assert.Empty(t, trail.Ancestors)
		assert.Nil(t, path)
		assert.Zero(t, notifier.count(), "path failures must not surface notifications")
	})
}

func TestBreadcrumbResolverWorkspaceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("workspace is fetched once per id", func(t *testing.T) {
		backend := workspaceFixture()
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   &recordingNotifier{},
		})

		resolver.Resolve(ctx, "ws-1", "")
		resolver.Resolve(ctx, "ws-1", "folder-a")
		trail, _ := resolver.Resolve(ctx, "ws-1", "folder-b")

		assert.Equal(t, 1, backend.workspaceCount)
		require.NotNil(t, trail.Root)
		assert.Equal(t, "Atlas Team", trail.Root.Name)

		// A different workspace id misses the cache.
		resolver.Resolve(ctx, "ws-2", "")
		assert.Equal(t, 2, backend.workspaceCount)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		backend := workspaceFixture()
		backend.workspaceErr = errors.New("boom")
		resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
			Workspaces: backend,
			Folders:    backend,
			Notifier:   &recordingNotifier{},
		})

		trail, _ := resolver.Resolve(ctx, "ws-1", "")
		assert.Nil(t, trail.Root)

		backend.workspaceErr = nil
		trail, _ = resolver.Resolve(ctx, "ws-1", "")
		require.NotNil(t, trail.Root)
		assert.Equal(t, 2, backend.workspaceCount)
	})
}

func TestBreadcrumbTruncation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		depth         int
		workspaceErr  error
		wantTruncated bool
		wantAncestors []string
	}{
		{
			name:          "depth 3 with root segment stays whole",
			depth:         3,
			wantTruncated: false,
			wantAncestors: []string{"Level 1", "Level 2", "Level 3"},
		},
		{
			name:          "depth 4 with root segment collapses to the last two",
			depth:         4,
			wantTruncated: true,
			wantAncestors: []string{"Level 3", "Level 4"},
		},
		{
			name:          "depth 8 keeps only the last two",
			depth:         8,
			wantTruncated: true,
			wantAncestors: []string{"Level 7", "Level 8"},
		},
		{
			name:          "depth 4 without root segment stays whole",
			depth:         4,
			workspaceErr:  errors.New("unavailable"),
			wantTruncated: false,
			wantAncestors: []string{"Level 1", "Level 2", "Level 3", "Level 4"},
		},
		{
			name:          "depth 5 without root segment collapses",
			depth:         5,
			workspaceErr:  errors.New("unavailable"),
			wantTruncated: true,
			wantAncestors: []string{"Level 4", "Level 5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := workspaceFixture()
			backend.workspaceErr = tt.workspaceErr
			leaf := fmt.Sprintf("folder-%d", tt.depth)
			backend.paths[leaf] = pathOfDepth(tt.depth)

			resolver := NewBreadcrumbResolver(BreadcrumbResolverDependencies{
				Workspaces: backend,
				Folders:    backend,
				Notifier:   &recordingNotifier{},
			})

			trail, _ := resolver.Resolve(ctx, "ws-1", leaf)

			assert.Equal(t, tt.wantTruncated, trail.Truncated)
			names := make([]string, 0, len(trail.Ancestors))
			for _, segment := range trail.Ancestors {
				names = append(names, segment.Name)
			}
			assert.Equal(t, tt.wantAncestors, names)
		})
	}
}
