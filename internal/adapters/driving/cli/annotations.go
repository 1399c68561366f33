package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cori/Memex/internal/core/domain"
)

var (
	annotSearchLimit int
	annotSearchJSON  bool
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "Search and list annotations",
}

var annotationsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsSearch,
}

var annotationsListCmd = &cobra.Command{
	Use:   "list [url]",
	Short: "List every annotation belonging to a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsList,
}

func init() {
	annotationsSearchCmd.Flags().IntVarP(&annotSearchLimit, "limit", "n", 10, "maximum number of results")
	annotationsSearchCmd.Flags().BoolVar(&annotSearchJSON, "json", false, "output results as JSON")
	annotationsCmd.AddCommand(annotationsSearchCmd)
	annotationsCmd.AddCommand(annotationsListCmd)
	rootCmd.AddCommand(annotationsCmd)
}

func runAnnotationsSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	q := domain.SearchQuery{Raw: args[0], Limit: annotSearchLimit}
	results, err := searchService.SearchAnnotations(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("annotation search failed: %w", err)
	}

	if annotSearchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAnnotations(cmd, results)
	return nil
}

func runAnnotationsList(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	results, err := indexService.ListAnnotations(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing annotations failed: %w", err)
	}

	printAnnotations(cmd, results)
	return nil
}

func printAnnotations(cmd *cobra.Command, results []domain.AnnotationResult) {
	if len(results) == 0 {
		cmd.Println("No annotations found.")
		return
	}

	for i := range results {
		cmd.Printf("  [%d] %s\n", i+1, results[i].Body)
		if results[i].Comment != "" {
			cmd.Printf("      %s\n", results[i].Comment)
		}
		cmd.Printf("      %s\n", results[i].PageURL)
		cmd.Println()
	}
}
