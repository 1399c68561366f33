package cli

import (
	"context"
	"time"

	"github.com/cori/Memex/internal/adapters/driven/storage/memory"
	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/services"
	"github.com/cori/Memex/internal/queryparser"
)

// setupTestServices wires the commands to in-memory backends seeded with
// a couple of pages. Returns a cleanup restoring the previous services.
func setupTestServices() func() {
	oldSearch := searchService
	oldIndex := indexService
	oldBookmarks := bookmarkService

	pages := memory.NewPageIndex()
	annots := memory.NewAnnotationStore()
	parser := queryparser.New()

	ctx := context.Background()
	pages.AddPage(ctx, domain.Page{ //nolint:errcheck
		URL:       "en.wikipedia.org/wiki/Shark",
		FullURL:   "https://en.wikipedia.org/wiki/Shark",
		Title:     "Shark - Wikipedia",
		Text:      "Sharks are a group of elasmobranch fish.",
		IndexedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	pages.AddPage(ctx, domain.Page{ //nolint:errcheck
		URL:       "ocean.example.com/dolphins",
		FullURL:   "https://ocean.example.com/dolphins",
		Title:     "Dolphins",
		Text:      "Dolphins are marine mammals, not sharks.",
		IndexedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	searchService = services.NewSearchService(pages, annots, parser)
	indexService = services.NewIndexService(pages, annots, parser)
	bookmarkService = services.NewBookmarkHandler(pages, nil)

	return func() {
		searchService = oldSearch
		indexService = oldIndex
		bookmarkService = oldBookmarks
	}
}
