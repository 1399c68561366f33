package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cori/Memex/internal/core/domain"
)

var (
	searchLimit      int
	searchSkip       int
	searchJSON       bool
	searchPagesOnly  bool
	searchAnnotsOnly bool
	searchDomains    []string
	searchTags       []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed pages",
	Long: `Searches the full-text page index and the annotation store and
prints a merged, deduplicated list of page results. Queries may carry
site: and # filters, e.g. "sharks site:wikipedia.org #research".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().IntVar(&searchSkip, "skip", 0, "number of results to skip")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchPagesOnly, "pages-only", false, "search pages only")
	searchCmd.Flags().BoolVar(&searchAnnotsOnly, "annotations-only", false, "search annotations only")
	searchCmd.Flags().StringSliceVar(&searchDomains, "domain", nil, "restrict results to a domain (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "restrict results to a tag (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	limit := searchLimit
	if !cmd.Flags().Changed("limit") && configStore != nil {
		if v := configStore.GetInt("search.default_limit"); v > 0 {
			limit = v
		}
	}

	q := domain.SearchQuery{
		Raw:     args[0],
		Limit:   limit,
		Skip:    searchSkip,
		Domains: searchDomains,
		Tags:    searchTags,
	}
	switch {
	case searchPagesOnly && searchAnnotsOnly:
		return errors.New("--pages-only and --annotations-only are mutually exclusive")
	case searchPagesOnly:
		q.ContentTypes = domain.ContentTypes{Pages: true}
	case searchAnnotsOnly:
		q.ContentTypes = domain.ContentTypes{Annotations: true}
	}

	results, err := searchService.SearchPages(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.PageResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.PageResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].URL
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		cmd.Printf("      %s\n", results[i].URL)
		if results[i].HasBookmark {
			cmd.Printf("      Bookmarked\n")
		}
		if len(results[i].Tags) > 0 {
			cmd.Printf("      Tags: %v\n", results[i].Tags)
		}
		for j := range results[i].Annotations {
			an := results[i].Annotations[j]
			cmd.Printf("      > %s\n", an.Body)
			if an.Comment != "" {
				cmd.Printf("        %s\n", an.Comment)
			}
		}
		cmd.Println()
	}

	return nil
}
