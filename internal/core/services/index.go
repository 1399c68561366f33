package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
	"github.com/cori/Memex/internal/core/ports/driving"
	"github.com/cori/Memex/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService exposes the index's per-operation capabilities. It is a
// thin orchestration layer: each operation delegates to the index or
// annotation store, which own their consistency.
type IndexService struct {
	pages  driven.PageIndex
	annots driven.AnnotationStore
	parser driven.QueryParser
}

// NewIndexService creates a new index service.
func NewIndexService(
	pages driven.PageIndex,
	annots driven.AnnotationStore,
	parser driven.QueryParser,
) *IndexService {
	return &IndexService{
		pages:  pages,
		annots: annots,
		parser: parser,
	}
}

// AddPage stores a page in the full-text index.
func (s *IndexService) AddPage(ctx context.Context, page domain.Page) error {
	if page.URL == "" {
		return fmt.Errorf("%w: page url is required", domain.ErrInvalidInput)
	}
	logger.Info("Indexing page %s", page.URL)
	return s.pages.AddPage(ctx, page)
}

// AddVisit records a visit to a page at the given instant.
func (s *IndexService) AddVisit(ctx context.Context, url string, at time.Time) error {
	if url == "" {
		return fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return s.pages.AddVisit(ctx, url, at)
}

// AddFavicon stores a page's favicon.
func (s *IndexService) AddFavicon(ctx context.Context, url string, icon []byte) error {
	if url == "" {
		return fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	if len(icon) == 0 {
		return fmt.Errorf("%w: favicon data is required", domain.ErrInvalidInput)
	}
	return s.pages.AddFavicon(ctx, url, icon)
}

// AddTag attaches a tag to a page.
func (s *IndexService) AddTag(ctx context.Context, url, tag string) error {
	if url == "" || tag == "" {
		return fmt.Errorf("%w: url and tag are required", domain.ErrInvalidInput)
	}
	return s.pages.AddTag(ctx, url, strings.ToLower(tag))
}

// DelTag detaches a tag from a page.
func (s *IndexService) DelTag(ctx context.Context, url, tag string) error {
	if url == "" || tag == "" {
		return fmt.Errorf("%w: url and tag are required", domain.ErrInvalidInput)
	}
	return s.pages.DelTag(ctx, url, strings.ToLower(tag))
}

// FetchPageTags returns the tags attached to a page.
func (s *IndexService) FetchPageTags(ctx context.Context, url string) ([]string, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	return s.pages.FetchPageTags(ctx, url)
}

// Suggest returns term completions for a prefix.
func (s *IndexService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.pages.Suggest(ctx, strings.ToLower(prefix), limit)
}

// ExtendedSuggest returns completions across terms, tags and domains.
func (s *IndexService) ExtendedSuggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.pages.ExtendedSuggest(ctx, strings.ToLower(prefix), limit)
}

// DelPages removes the given pages from the index.
func (s *IndexService) DelPages(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	logger.Info("Deleting %d pages", len(urls))
	return s.pages.DelPages(ctx, urls)
}

// DelPagesByDomain removes every page under the given domain.
func (s *IndexService) DelPagesByDomain(ctx context.Context, host string) error {
	if host == "" {
		return fmt.Errorf("%w: domain is required", domain.ErrInvalidInput)
	}
	logger.Info("Deleting pages for domain %s", host)
	return s.pages.DelPagesByDomain(ctx, host)
}

// DelPagesByPattern removes every page whose URL contains the pattern.
func (s *IndexService) DelPagesByPattern(ctx context.Context, pattern string) error {
	if pattern == "" {
		return fmt.Errorf("%w: pattern is required", domain.ErrInvalidInput)
	}
	logger.Info("Deleting pages matching %q", pattern)
	return s.pages.DelPagesByPattern(ctx, pattern)
}

// AddBookmark marks a page as bookmarked.
func (s *IndexService) AddBookmark(ctx context.Context, url string, tabID *int) error {
	if url == "" {
		return fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	return s.pages.AddBookmark(ctx, url, tabID)
}

// DelBookmark removes a page's bookmark.
func (s *IndexService) DelBookmark(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	return s.pages.DelBookmark(ctx, url)
}

// GetMatchingPageCount returns the number of pages matching a query,
// ignoring pagination bounds. A non-searchable query counts zero.
func (s *IndexService) GetMatchingPageCount(ctx context.Context, q domain.SearchQuery) (int, error) {
	parsed := s.parser.Parse(q.Raw)
	if parsed.Bad {
		return 0, nil
	}
	q = mergeParsedFilters(q, parsed)
	return s.pages.PageCount(ctx, parsed.Terms, q)
}

// ListAnnotations returns every annotation belonging to a page.
func (s *IndexService) ListAnnotations(ctx context.Context, url string) ([]domain.AnnotationResult, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	return s.annots.ListForPage(ctx, url)
}
