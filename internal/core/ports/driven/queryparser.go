package driven

import "github.com/cori/Memex/internal/core/domain"

// QueryParser turns raw query text into normalised search terms.
// Parsing is pure: the same input always yields the same output.
type QueryParser interface {
	// Parse extracts terms and inline filters from raw query text.
	// The result's Bad flag marks queries that must not be searched.
	Parse(raw string) domain.ParsedQuery
}
