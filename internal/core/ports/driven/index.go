package driven

import (
	"context"
	"time"

	"github.com/cori/Memex/internal/core/domain"
)

// PageIndex is the full-text page index and its mutation surface.
// Each operation is independent; the core does not sequence them beyond
// the bookmark flow. Implementations own their consistency.
type PageIndex interface {
	// AddPage adds or updates a page in the index.
	AddPage(ctx context.Context, page domain.Page) error

	// Search returns ranked page-level matches for the given terms,
	// constrained by the query's time-range, domain and tag filters.
	// Pagination bounds in q are honoured when set.
	Search(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error)

	// PageCount returns the number of pages matching terms and filters,
	// ignoring pagination bounds.
	PageCount(ctx context.Context, terms []domain.Term, q domain.SearchQuery) (int, error)

	// DelPages removes the given pages and their dependent records.
	DelPages(ctx context.Context, urls []string) error

	// DelPagesByDomain removes every page under the given domain.
	DelPagesByDomain(ctx context.Context, host string) error

	// DelPagesByPattern removes every page whose URL contains the pattern.
	DelPagesByPattern(ctx context.Context, pattern string) error

	// AddTag attaches a tag to a page.
	AddTag(ctx context.Context, url, tag string) error

	// DelTag detaches a tag from a page.
	DelTag(ctx context.Context, url, tag string) error

	// FetchPageTags returns the tags attached to a page.
	FetchPageTags(ctx context.Context, url string) ([]string, error)

	// AddBookmark marks a page as bookmarked. tabID carries the browser
	// tab the bookmark was created from, when known.
	AddBookmark(ctx context.Context, url string, tabID *int) error

	// DelBookmark removes a page's bookmark.
	DelBookmark(ctx context.Context, url string) error

	// AddVisit records a visit to a page.
	AddVisit(ctx context.Context, url string, at time.Time) error

	// AddFavicon stores a page's favicon.
	AddFavicon(ctx context.Context, url string, icon []byte) error

	// Suggest returns term completions for a prefix.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)

	// ExtendedSuggest returns completions for a prefix across terms,
	// tags and domains.
	ExtendedSuggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error)
}
