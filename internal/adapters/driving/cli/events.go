package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cori/Memex/internal/core/domain"
)

var eventNodeTitle string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Feed browser bookmark events into the index",
	Long: `Replays bookmark notifications from the browser. Folder nodes
(nodes without a URL) are ignored.`,
}

var eventsBookmarkCreatedCmd = &cobra.Command{
	Use:   "bookmark-created [id] [url]",
	Short: "Handle a bookmark-created notification",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkCreated,
}

var eventsBookmarkRemovedCmd = &cobra.Command{
	Use:   "bookmark-removed [id] [url]",
	Short: "Handle a bookmark-removed notification",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkRemoved,
}

func init() {
	eventsBookmarkCreatedCmd.Flags().StringVar(&eventNodeTitle, "title", "", "bookmark node title")
	eventsCmd.AddCommand(eventsBookmarkCreatedCmd)
	eventsCmd.AddCommand(eventsBookmarkRemovedCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runBookmarkCreated(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	node := domain.BookmarkNode{ID: args[0], Title: eventNodeTitle, URL: args[1]}
	if err := bookmarkService.OnCreated(cmd.Context(), node); err != nil {
		return fmt.Errorf("handling bookmark creation failed: %w", err)
	}
	cmd.Printf("Bookmark recorded for %s\n", node.URL)
	return nil
}

func runBookmarkRemoved(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	node := domain.BookmarkNode{ID: args[0], Title: eventNodeTitle, URL: args[1]}
	if err := bookmarkService.OnRemoved(cmd.Context(), node); err != nil {
		return fmt.Errorf("handling bookmark removal failed: %w", err)
	}
	cmd.Printf("Bookmark removal recorded for %s\n", node.URL)
	return nil
}
