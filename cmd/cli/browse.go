package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/internal/initialization"
	"github.com/terracarta/terracarta/internal/tui"
)

func NewBrowseCommand(container *initialization.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <workspace-id>",
		Short: "Browse a workspace's folders and maps",
		Long: `Open the interactive browser for a workspace. Navigate folders, move maps
and folders with drag-and-drop, rename, delete, and create folders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("folder")
			return runBrowse(container, args[0], path)
		},
	}

	cmd.Flags().String("folder", "", "Folder id to open (defaults to the workspace root)")

	return cmd
}

func runBrowse(container *initialization.Container, workspaceID, path string) error {
	err := tui.Run(context.Background(), workspaceID, path, tui.ModelDependencies{
		Workspaces: container.GetWorkspaceService(),
		Folders:    container.GetFolderService(),
		Maps:       container.GetMapService(),
		Session:    container.GetSessionStore(),
	})

	if errors.Is(err, domain.ErrAuthRequired) {
		fmt.Printf("🔑 Session expired. Run '%s login' to continue where you left off.\n", os.Args[0])
		os.Exit(1)
	}

	return err
}
