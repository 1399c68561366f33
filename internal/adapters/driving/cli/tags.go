package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage page tags",
}

var tagsAddCmd = &cobra.Command{
	Use:   "add [url] [tag]",
	Short: "Attach a tag to a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsAdd,
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove [url] [tag]",
	Short: "Detach a tag from a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsRemove,
}

var tagsListCmd = &cobra.Command{
	Use:   "list [url]",
	Short: "List the tags attached to a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsList,
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)
	tagsCmd.AddCommand(tagsListCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.AddTag(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("adding tag failed: %w", err)
	}
	cmd.Printf("Tagged %s with %q\n", args[0], args[1])
	return nil
}

func runTagsRemove(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.DelTag(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("removing tag failed: %w", err)
	}
	cmd.Printf("Removed tag %q from %s\n", args[1], args[0])
	return nil
}

func runTagsList(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	tags, err := indexService.FetchPageTags(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching tags failed: %w", err)
	}

	if len(tags) == 0 {
		cmd.Println("No tags.")
		return nil
	}
	for _, tag := range tags {
		cmd.Println(tag)
	}
	return nil
}
