package driving

import (
	"context"
	"time"

	"github.com/cori/Memex/internal/core/domain"
)

// IndexService exposes the index's mutation and lookup operations to
// external actors. Each operation maps to one remotely callable name.
type IndexService interface {
	// AddPage stores a page in the full-text index.
	AddPage(ctx context.Context, page domain.Page) error

	// AddVisit records a visit to a page at the given instant.
	AddVisit(ctx context.Context, url string, at time.Time) error

	// AddFavicon stores a page's favicon.
	AddFavicon(ctx context.Context, url string, icon []byte) error

	// AddTag attaches a tag to a page.
	AddTag(ctx context.Context, url, tag string) error

	// DelTag detaches a tag from a page.
	DelTag(ctx context.Context, url, tag string) error

	// FetchPageTags returns the tags attached to a page.
	FetchPageTags(ctx context.Context, url string) ([]string, error)

	// Suggest returns term completions for a prefix.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)

	// ExtendedSuggest returns completions across terms, tags and domains.
	ExtendedSuggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error)

	// DelPages removes the given pages from the index.
	DelPages(ctx context.Context, urls []string) error

	// DelPagesByDomain removes every page under the given domain.
	DelPagesByDomain(ctx context.Context, host string) error

	// DelPagesByPattern removes every page whose URL contains the pattern.
	DelPagesByPattern(ctx context.Context, pattern string) error

	// AddBookmark marks a page as bookmarked.
	AddBookmark(ctx context.Context, url string, tabID *int) error

	// DelBookmark removes a page's bookmark.
	DelBookmark(ctx context.Context, url string) error

	// GetMatchingPageCount returns the number of pages matching a query.
	GetMatchingPageCount(ctx context.Context, q domain.SearchQuery) (int, error)

	// ListAnnotations returns every annotation belonging to a page.
	ListAnnotations(ctx context.Context, url string) ([]domain.AnnotationResult, error)
}
