package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/initialization"
)

func NewStatusCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		Long:  `Display whether a session is active and which API endpoint is in use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(container)
		},
	}
}

func runStatus(container *initialization.Container) error {
	store := container.GetSessionStore()

	fmt.Printf("   API URL: %s\n", store.APIBaseURL())

	if store.HasValidToken() {
		fmt.Println("✅ Session is active")
	} else if store.Token() != "" {
		fmt.Println("⌛ Session has expired")
		fmt.Printf("Run '%s login' to sign in again\n", os.Args[0])
	} else {
		fmt.Println("❌ Not logged in")
		fmt.Printf("Run '%s login' to sign in\n", os.Args[0])
	}

	return nil
}
