package domain

import "time"

// Page is the canonical representation of an indexed page.
type Page struct {
	// URL is the normalised page URL and the page's unique identity.
	URL string

	// FullURL is the original, unnormalised URL.
	FullURL string

	// Title is the page title at index time.
	Title string

	// Text is the extracted page body used for full-text matching.
	Text string

	// IndexedAt is when the page was first added to the index.
	IndexedAt time.Time
}

// PageResult is a single page-level search hit. Within a merged result
// set no two entries share the same URL.
type PageResult struct {
	// URL is the page's unique identity.
	URL string

	// FullURL is the original, unnormalised URL.
	FullURL string

	// Title is the page title.
	Title string

	// Score is the relevance score assigned by the contributing searcher.
	Score float64

	// DisplayTime is the instant shown to the user: the latest visit,
	// or the index time when the page was never visited.
	DisplayTime time.Time

	// HasBookmark reports whether the page is bookmarked.
	HasBookmark bool

	// Tags are the tags attached to the page.
	Tags []string

	// Annotations is the ordered sequence of annotation results
	// belonging to this page. Possibly empty.
	Annotations []AnnotationResult
}

// AnnotationResult is a single annotation-level search hit.
type AnnotationResult struct {
	// ID is the annotation's unique identifier.
	ID string

	// PageURL is the normalised URL of the annotation's parent page.
	PageURL string

	// PageTitle is the parent page's title, carried for display.
	PageTitle string

	// Body is the highlighted text the annotation was created from.
	Body string

	// Comment is the user's note attached to the highlight.
	Comment string

	// CreatedAt is when the annotation was created.
	CreatedAt time.Time

	// Tags are the tags attached to the annotation.
	Tags []string
}

// Suggestion is a single term-completion candidate.
type Suggestion struct {
	// Value is the suggested completion.
	Value string

	// Type names the suggestion source: "term", "tag" or "domain".
	Type string
}
