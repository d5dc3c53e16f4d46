package managers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/pkg/clients/terracarta"
)

func newFolderService(t *testing.T, handler http.Handler) domain.FolderService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := terracarta.NewClient(
		terracarta.WithBaseURL(server.URL),
		terracarta.WithRetry(0, 0),
	)
	return NewFolderManager(FolderManagerDependencies{Client: client})
}

func TestFolderManagerGetFolder(t *testing.T) {
	t.Run("maps wire content into the domain", func(t *testing.T) {
		service := newFolderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(terracarta.FolderContent{
				Folder:       terracarta.FolderInfo{ID: "folder-a", Name: "Surveys", WorkspaceID: "ws-1"},
				ChildFolders: []terracarta.FolderInfo{{ID: "folder-b", Name: "2024", ParentFolderID: "folder-a"}},
				MapInfos:     []terracarta.MapInfo{{ID: "map-1", Name: "coastline.gpkg", LastVersionID: "version-1"}},
			})
		}))

		content, err := service.GetFolder(context.Background(), "folder-a")

		require.NoError(t, err)
		assert.Equal(t, "Surveys", content.Folder.Name)
		require.Len(t, content.ChildFolders, 1)
		assert.Equal(t, "folder-a", content.ChildFolders[0].ParentFolderID)
		require.Len(t, content.Maps, 1)
		assert.Equal(t, "version-1", content.Maps[0].VersionID, "last_version_id maps to the domain version id")
	})

	t.Run("404 maps to ErrFolderNotFound", func(t *testing.T) {
		service := newFolderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "folder not found"})
		}))

		_, err := service.GetFolder(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrFolderNotFound)
	})
}

func TestFolderManagerRenameFolder(t *testing.T) {
	service := newFolderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req terracarta.RenameFolderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(terracarta.FolderInfo{ID: req.FolderID, Name: req.NewName})
	}))

	folder, err := service.RenameFolder(context.Background(), domain.RenameFolderParams{
		FolderID: "folder-a",
		NewName:  "Field Surveys",
	})

	require.NoError(t, err)
	assert.Equal(t, "Field Surveys", folder.Name)
}
