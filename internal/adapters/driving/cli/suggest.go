package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	suggestLimit    int
	suggestExtended bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Complete a search term prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestExtended, "extended", false, "include tag and domain suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if suggestExtended {
		suggestions, err := indexService.ExtendedSuggest(cmd.Context(), args[0], suggestLimit)
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}
		for _, s := range suggestions {
			cmd.Printf("%s\t%s\n", s.Value, s.Type)
		}
		return nil
	}

	suggestions, err := indexService.Suggest(cmd.Context(), args[0], suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}
	for _, s := range suggestions {
		cmd.Println(s)
	}
	return nil
}
