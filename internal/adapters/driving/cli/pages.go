package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cori/Memex/internal/core/domain"
	htmlnorm "github.com/cori/Memex/internal/normalisers/html"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage indexed pages",
}

var pagesAddCmd = &cobra.Command{
	Use:   "add [url] [file]",
	Short: "Index a page from an HTML file",
	Long: `Extracts the title and text from an HTML file and stores the page
in the full-text index. Pass "-" as the file to read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runPagesAdd,
}

var pagesVisitCmd = &cobra.Command{
	Use:   "visit [url]",
	Short: "Record a visit to a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesVisit,
}

var pagesDeleteCmd = &cobra.Command{
	Use:   "delete [url]...",
	Short: "Delete pages from the index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPagesDelete,
}

var pagesDeleteDomainCmd = &cobra.Command{
	Use:   "delete-domain [domain]",
	Short: "Delete every indexed page under a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesDeleteDomain,
}

var pagesDeletePatternCmd = &cobra.Command{
	Use:   "delete-pattern [pattern]",
	Short: "Delete every indexed page whose URL contains a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesDeletePattern,
}

var pagesFaviconCmd = &cobra.Command{
	Use:   "favicon [url] [file]",
	Short: "Store a page's favicon",
	Args:  cobra.ExactArgs(2),
	RunE:  runPagesFavicon,
}

var pagesCountCmd = &cobra.Command{
	Use:   "count [query]",
	Short: "Count the pages matching a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesCount,
}

func init() {
	pagesCmd.AddCommand(pagesAddCmd)
	pagesCmd.AddCommand(pagesVisitCmd)
	pagesCmd.AddCommand(pagesDeleteCmd)
	pagesCmd.AddCommand(pagesDeleteDomainCmd)
	pagesCmd.AddCommand(pagesDeletePatternCmd)
	pagesCmd.AddCommand(pagesFaviconCmd)
	pagesCmd.AddCommand(pagesCountCmd)
	rootCmd.AddCommand(pagesCmd)
}

func runPagesAdd(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	url, file := args[0], args[1]

	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("reading page content: %w", err)
	}

	page, err := htmlnorm.New().Normalise(cmd.Context(), url, raw)
	if err != nil {
		return fmt.Errorf("extracting page text: %w", err)
	}

	if err := indexService.AddPage(cmd.Context(), page); err != nil {
		return fmt.Errorf("indexing page failed: %w", err)
	}
	cmd.Printf("Indexed %s (%q)\n", page.URL, page.Title)
	return nil
}

func runPagesVisit(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.AddVisit(cmd.Context(), args[0], time.Now().UTC()); err != nil {
		return fmt.Errorf("recording visit failed: %w", err)
	}
	cmd.Printf("Recorded visit to %s\n", args[0])
	return nil
}

func runPagesDelete(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.DelPages(cmd.Context(), args); err != nil {
		return fmt.Errorf("deleting pages failed: %w", err)
	}
	cmd.Printf("Deleted %d page(s)\n", len(args))
	return nil
}

func runPagesDeleteDomain(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.DelPagesByDomain(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting pages failed: %w", err)
	}
	cmd.Printf("Deleted pages under %s\n", args[0])
	return nil
}

func runPagesDeletePattern(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.DelPagesByPattern(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting pages failed: %w", err)
	}
	cmd.Printf("Deleted pages matching %q\n", args[0])
	return nil
}

func runPagesFavicon(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	icon, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading favicon: %w", err)
	}
	if err := indexService.AddFavicon(cmd.Context(), args[0], icon); err != nil {
		return fmt.Errorf("storing favicon failed: %w", err)
	}
	cmd.Printf("Stored favicon for %s\n", args[0])
	return nil
}

func runPagesCount(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	count, err := indexService.GetMatchingPageCount(cmd.Context(), domain.SearchQuery{Raw: args[0]})
	if err != nil {
		return fmt.Errorf("counting pages failed: %w", err)
	}
	cmd.Printf("%d\n", count)
	return nil
}
