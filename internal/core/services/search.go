package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
	"github.com/cori/Memex/internal/core/ports/driving"
	"github.com/cori/Memex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService routes queries to the page and annotation searchers and
// merges their output into a single page-centric result set.
type SearchService struct {
	pages  driven.PageIndex
	annots driven.AnnotationStore
	parser driven.QueryParser
}

// NewSearchService creates a new search service.
func NewSearchService(
	pages driven.PageIndex,
	annots driven.AnnotationStore,
	parser driven.QueryParser,
) *SearchService {
	return &SearchService{
		pages:  pages,
		annots: annots,
		parser: parser,
	}
}

// SearchPages performs the routed, possibly concurrent, page-centric search.
//
// Decision order: pages-only queries go straight to the page index;
// annotations-only queries go to the annotation store in grouped form;
// everything else fans out to both searchers concurrently and merges.
func (s *SearchService) SearchPages(ctx context.Context, q domain.SearchQuery) ([]domain.PageResult, error) {
	logger.Section("Page Search")
	logger.Debug("Query: %q", q.Raw)

	parsed := s.parser.Parse(q.Raw)
	if parsed.Bad {
		logger.Debug("Non-searchable query, returning no results")
		return []domain.PageResult{}, nil
	}
	q = mergeParsedFilters(q, parsed)

	switch {
	case q.ContentTypes.PagesOnly():
		if s.pages == nil {
			return nil, domain.ErrIndexUnavailable
		}
		logger.Debug("Content types: pages only")
		results, err := s.pages.Search(ctx, parsed.Terms, q)
		if err != nil {
			return nil, fmt.Errorf("page search: %w", err)
		}
		return results, nil

	case q.ContentTypes.AnnotationsOnly():
		if s.annots == nil {
			return nil, domain.ErrAnnotationsUnavailable
		}
		logger.Debug("Content types: annotations only")
		results, err := s.annots.SearchGrouped(ctx, parsed.Terms, q)
		if err != nil {
			return nil, fmt.Errorf("annotation search: %w", err)
		}
		return results, nil
	}

	logger.Debug("Content types: both, fanning out")
	return s.searchBoth(ctx, parsed.Terms, q)
}

// searchBoth runs the page and annotation searches concurrently, waits
// for both, and merges. The join is all-or-nothing: if either branch
// fails the whole operation fails, so callers never see a partial merge.
func (s *SearchService) searchBoth(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	if s.pages == nil {
		return nil, domain.ErrIndexUnavailable
	}
	if s.annots == nil {
		return nil, domain.ErrAnnotationsUnavailable
	}

	// Sub-searches run unpaginated; sorting and pagination are applied
	// to the merged set below.
	subQuery := q
	subQuery.Limit = 0
	subQuery.Skip = 0

	var pageResults, annotResults []domain.PageResult
	var pageErr, annotErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		pageResults, pageErr = s.pages.Search(ctx, terms, subQuery)
	}()

	go func() {
		defer wg.Done()
		annotResults, annotErr = s.annots.SearchGrouped(ctx, terms, subQuery)
	}()

	wg.Wait()

	if pageErr != nil {
		return nil, fmt.Errorf("page search: %w", pageErr)
	}
	if annotErr != nil {
		return nil, fmt.Errorf("annotation search: %w", annotErr)
	}

	logger.Debug("Merging %d page + %d annotation results", len(pageResults), len(annotResults))

	// Annotation-grouped results first, page results last: the merge
	// keeps the later list's page metadata on conflict, so synthesised
	// annotation page stubs never override full page metadata.
	merged := MergePageResults([][]domain.PageResult{annotResults, pageResults})
	sortPageResults(merged)

	logger.Info("Merged results: %d", len(merged))
	return paginate(merged, q.Skip, q.Limit), nil
}

// SearchAnnotations validates the query and forwards it to the
// annotation searcher. A non-searchable query is a defined no-op.
func (s *SearchService) SearchAnnotations(ctx context.Context, q domain.SearchQuery) ([]domain.AnnotationResult, error) {
	logger.Section("Annotation Search")
	logger.Debug("Query: %q", q.Raw)

	parsed := s.parser.Parse(q.Raw)
	if parsed.Bad {
		logger.Debug("Non-searchable query, returning no results")
		return []domain.AnnotationResult{}, nil
	}
	if s.annots == nil {
		return nil, domain.ErrAnnotationsUnavailable
	}
	q = mergeParsedFilters(q, parsed)

	results, err := s.annots.Search(ctx, parsed.Terms, q)
	if err != nil {
		return nil, fmt.Errorf("annotation search: %w", err)
	}
	logger.Info("Annotation results: %d", len(results))
	return results, nil
}

// mergeParsedFilters folds filters lifted out of the raw query text
// (site: and # syntax) into the query's own filter lists.
func mergeParsedFilters(q domain.SearchQuery, parsed domain.ParsedQuery) domain.SearchQuery {
	q.Domains = append(append([]string(nil), q.Domains...), parsed.Domains...)
	q.Tags = append(append([]string(nil), q.Tags...), parsed.Tags...)
	return q
}

// sortPageResults orders results by score, newest display time breaking
// ties. The sort is stable so equal pages keep their merge order.
func sortPageResults(results []domain.PageResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DisplayTime.After(results[j].DisplayTime)
	})
}

// paginate applies skip and limit to results. A zero limit means no bound.
func paginate(results []domain.PageResult, skip, limit int) []domain.PageResult {
	if skip >= len(results) {
		return []domain.PageResult{}
	}
	results = results[skip:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}
