package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/terracarta/terracarta/internal/browser"
	"github.com/terracarta/terracarta/internal/domain"
	"github.com/terracarta/terracarta/internal/initialization"
)

func NewUploadCommand(container *initialization.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <workspace-id> <file>",
		Short: "Upload a map file and follow its processing",
		Long: `Upload a geospatial dataset into a workspace folder and poll the server-side
processing job until it completes or fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, _ := cmd.Flags().GetString("folder")
			return runUpload(container, args[0], folderID, args[1])
		},
	}

	cmd.Flags().String("folder", "", "Destination folder id (defaults to the workspace root)")

	return cmd
}

func runUpload(container *initialization.Container, workspaceID, folderID, filePath string) error {
	store := container.GetSessionStore()
	if !store.HasValidToken() {
		fmt.Printf("❌ Not logged in. Run '%s login' first.\n", os.Args[0])
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ctx := context.Background()

	fmt.Printf("⬆️  Uploading %s…\n", filepath.Base(filePath))

	upload, err := container.GetMapService().UploadMap(ctx, domain.UploadMapParams{
		WorkspaceID: workspaceID,
		FolderID:    folderID,
		Name:        filepath.Base(filePath),
		Reader:      file,
	})
	if err != nil {
		return err
	}

	fmt.Println("📦 Upload accepted, processing…")

	return followProcessing(ctx, container, upload.VersionID)
}

// followProcessing polls the version's processing job until it reaches a
// terminal state, rendering progressive status on a single line.
func followProcessing(ctx context.Context, container *initialization.Container, versionID string) error {
	bar := progress.New(progress.WithDefaultGradient())

	poller := browser.NewVersionPoller(versionID, browser.DefaultPollerConfig(), browser.VersionPollerDependencies{
		Versions: container.GetVersionService(),
	})

	for {
		delay, done := poller.Poll(ctx)

		last := poller.Last()
		fmt.Printf("\r%s %s  %s", bar.ViewAs(float64(last.Progress)/100), last.Status, last.Message)

		if done {
			fmt.Println()
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	switch poller.State() {
	case browser.PollCompleted:
		fmt.Println("✅ Processing complete — your map is ready")
	case browser.PollFailed:
		fmt.Printf("❌ Processing failed: %s\n", poller.Last().Message)
		fmt.Println("   Contact support@terracarta.io if the problem persists.")
		os.Exit(1)
	case browser.PollStalled:
		fmt.Println("⏳ Still processing — check back later in the web app")
	}

	return nil
}
