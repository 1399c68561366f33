package driven

import (
	"context"

	"github.com/cori/Memex/internal/core/domain"
)

// Collection identifiers used to scope annotation storage queries.
const (
	CollectionAnnotations = "annotations"
	CollectionLists       = "customLists"
	CollectionListEntries = "pageListEntries"
	CollectionTags        = "tags"
	CollectionBookmarks   = "annotBookmarks"
)

// AnnotationStore provides annotation persistence and search.
type AnnotationStore interface {
	// Save stores an annotation. An empty ID is assigned on insert.
	Save(ctx context.Context, annot *domain.AnnotationResult) error

	// Search returns annotation-level matches for the given terms,
	// constrained by the query's filters and pagination bounds.
	Search(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.AnnotationResult, error)

	// SearchGrouped runs the same search but synthesises page-level
	// results: one PageResult per parent page, with the matching
	// annotations attached.
	SearchGrouped(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error)

	// ListForPage returns every annotation belonging to a page, in
	// creation order.
	ListForPage(ctx context.Context, url string) ([]domain.AnnotationResult, error)
}
