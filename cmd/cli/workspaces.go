package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/initialization"
)

func NewWorkspacesCommand(container *initialization.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "Manage workspaces",
		Long:  `List the workspaces the authenticated account has access to.`,
	}

	cmd.AddCommand(NewWorkspacesListCommand(container))

	return cmd
}

func NewWorkspacesListCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accessible workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkspacesList(container)
		},
	}
}

func runWorkspacesList(container *initialization.Container) error {
	store := container.GetSessionStore()

	if !store.HasValidToken() {
		fmt.Printf("❌ Not logged in. Run '%s login' first.\n", os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	workspaces, err := container.GetWorkspaceService().GetWorkspaces(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch workspaces")
		return err
	}

	fmt.Println("📋 Workspaces:")
	if len(workspaces) == 0 {
		fmt.Println("   No workspaces")
		return nil
	}

	for i, workspace := range workspaces {
		fmt.Printf("   %d. %s (%s)\n", i+1, workspace.Name, workspace.ID)
	}
	fmt.Printf("\nTotal: %d workspace(s)\n", len(workspaces))

	return nil
}
