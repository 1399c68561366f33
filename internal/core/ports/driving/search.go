package driving

import (
	"context"

	"github.com/cori/Memex/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// SearchPages routes a query to the page searcher, the annotation
	// searcher, or both, and returns a merged, deduplicated,
	// page-centric result set. A non-searchable query yields an empty
	// set, never an error.
	SearchPages(ctx context.Context, q domain.SearchQuery) ([]domain.PageResult, error)

	// SearchAnnotations returns annotation-level matches for a query.
	// A non-searchable query yields an empty set, never an error.
	SearchAnnotations(ctx context.Context, q domain.SearchQuery) ([]domain.AnnotationResult, error)
}
