package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/initialization"
	"github.com/terracarta/terracarta/internal/tui"
)

func NewLoginCommand(container *initialization.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Terracarta platform",
		Long: `Store an API token for the Terracarta platform. Tokens are issued from the
web app under account settings. If a browse session was interrupted by an
expired session, login resumes it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			return runLogin(container, token)
		},
	}

	cmd.Flags().String("token", "", "API token (prompted interactively when omitted)")

	return cmd
}

func runLogin(container *initialization.Container, token string) error {
	store := container.GetSessionStore()

	if token == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("API token").
				Description("Issued in the web app under account settings.").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	if token == "" {
		return fmt.Errorf("no token provided")
	}

	if err := store.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	container.GetClient().SetToken(token)

	fmt.Println("✅ Logged in")

	// Resume the destination the user was heading to before the auth
	// detour interrupted them.
	intent, ok := store.TakeIntent()
	if !ok {
		return nil
	}

	fmt.Printf("↩️  Resuming workspace %s\n", intent.WorkspaceID)

	return tui.Run(context.Background(), intent.WorkspaceID, intent.Path, tui.ModelDependencies{
		Workspaces: container.GetWorkspaceService(),
		Folders:    container.GetFolderService(),
		Maps:       container.GetMapService(),
		Session:    store,
	})
}
