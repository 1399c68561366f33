// Package cli implements the memex command-line interface using cobra.
// Commands share a set of services wired up once per invocation from the
// configured storage backend.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	fileconfig "github.com/cori/Memex/internal/adapters/driven/config/file"
	"github.com/cori/Memex/internal/adapters/driven/storage/memory"
	"github.com/cori/Memex/internal/adapters/driven/storage/sqlite"
	"github.com/cori/Memex/internal/core/ports/driven"
	"github.com/cori/Memex/internal/core/ports/driving"
	"github.com/cori/Memex/internal/core/services"
	"github.com/cori/Memex/internal/logger"
	"github.com/cori/Memex/internal/queryparser"
)

// version is set at build time via ldflags.
var version = "dev"

// Services shared by all commands, wired in initServices.
var (
	searchService   driving.SearchService
	indexService    driving.IndexService
	bookmarkService driving.BookmarkEvents
	configStore     driven.ConfigStore

	store *sqlite.Store

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "memex",
	Short: "Memex is a local full-text search engine for your browsing history",
	Long: `Memex indexes the pages you visit and the annotations you make on
them, and lets you search both from the command line or over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if skipServiceInit(cmd) {
			return nil
		}
		if err := initServices(); err != nil {
			return err
		}
		if !verbose && configStore != nil && configStore.GetBool("logging.verbose") {
			logger.SetVerbose(true)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if store != nil {
			store.Close() //nolint:errcheck
			store = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// skipServiceInit reports whether a command runs without storage.
func skipServiceInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// initServices wires the storage backend into the core services.
// Commands that already received services (tests) are left alone.
func initServices() error {
	if searchService != nil {
		return nil
	}

	cfg, err := fileconfig.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	parser := queryparser.New()

	var (
		pages  driven.PageIndex
		annots driven.AnnotationStore
	)
	if cfg.GetString("storage.backend") == "memory" {
		logger.Debug("Using in-memory storage backend")
		pages = memory.NewPageIndex()
		annots = memory.NewAnnotationStore()
	} else {
		s, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
		if err != nil {
			return fmt.Errorf("opening index: %w", err)
		}
		store = s
		pages = s.PageIndex()
		annots = s.AnnotationStore()
		logger.Debug("Using SQLite index at %s", s.Path())
	}

	searchService = services.NewSearchService(pages, annots, parser)
	indexService = services.NewIndexService(pages, annots, parser)
	bookmarkService = services.NewBookmarkHandler(pages, nil)

	return nil
}

// Execute runs the root command. Build metadata is injected by main.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}
