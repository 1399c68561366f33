package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarkTabID int

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage page bookmarks",
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Mark a page as bookmarked",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove [url]",
	Short: "Remove a page's bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksRemove,
}

func init() {
	bookmarksAddCmd.Flags().IntVar(&bookmarkTabID, "tab", 0, "browser tab the bookmark was created from")
	bookmarksCmd.AddCommand(bookmarksAddCmd)
	bookmarksCmd.AddCommand(bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	var tabID *int
	if cmd.Flags().Changed("tab") {
		tabID = &bookmarkTabID
	}

	if err := indexService.AddBookmark(cmd.Context(), args[0], tabID); err != nil {
		return fmt.Errorf("adding bookmark failed: %w", err)
	}
	cmd.Printf("Bookmarked %s\n", args[0])
	return nil
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.DelBookmark(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing bookmark failed: %w", err)
	}
	cmd.Printf("Removed bookmark from %s\n", args[0])
	return nil
}
