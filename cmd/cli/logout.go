package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/initialization"
)

func NewLogoutCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.GetSessionStore().ClearToken(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("👋 Logged out")
			return nil
		},
	}
}
