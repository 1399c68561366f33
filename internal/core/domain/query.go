package domain

import "time"

// ContentTypes selects which search sources a query covers.
// The zero value means "unspecified" and is treated as both.
type ContentTypes struct {
	// Pages includes full-text page search results.
	Pages bool

	// Annotations includes annotation search results.
	Annotations bool
}

// PagesOnly reports whether the query is scoped to page results alone.
func (c ContentTypes) PagesOnly() bool {
	return c.Pages && !c.Annotations
}

// AnnotationsOnly reports whether the query is scoped to annotations alone.
func (c ContentTypes) AnnotationsOnly() bool {
	return c.Annotations && !c.Pages
}

// SearchQuery carries the raw query text plus its recognised options.
// It is immutable once constructed; services copy it before adjusting
// pagination bounds.
type SearchQuery struct {
	// Raw is the unparsed query string as typed by the user.
	Raw string

	// ContentTypes scopes the search to pages, annotations, or both.
	ContentTypes ContentTypes

	// Limit is the maximum number of results. Zero means no bound.
	Limit int

	// Skip is the number of results to skip before the first returned one.
	Skip int

	// StartTime bounds results to items at or after this instant.
	// The zero time means unbounded.
	StartTime time.Time

	// EndTime bounds results to items at or before this instant.
	// The zero time means unbounded.
	EndTime time.Time

	// Domains filters results to pages under these domains.
	Domains []string

	// Tags filters results to pages carrying all of these tags.
	Tags []string
}

// Term is a single normalised search token.
type Term string

// ParsedQuery is the query validator's output: the normalised terms
// plus any filters lifted out of the raw text, and the verdict on
// whether the query is searchable at all.
type ParsedQuery struct {
	// Terms are the usable, normalised tokens. May be empty.
	Terms []Term

	// Domains holds domains extracted from site: filters in the raw text.
	Domains []string

	// Tags holds tags extracted from # filters in the raw text.
	Tags []string

	// Bad marks the query as non-searchable: no usable terms were
	// extracted, or the filter syntax was malformed. A bad query must
	// never reach a searcher.
	Bad bool
}
