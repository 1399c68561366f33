package services

import (
	"context"
	"time"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockPageIndex implements driven.PageIndex for testing. Call counters
// let tests assert which searchers the router actually invoked.
type mockPageIndex struct {
	results []domain.PageResult
	count   int

	searchErr   error
	mutationErr error

	searchCalls    int
	addBookmarks   []bookmarkCall
	delBookmarks   []string
	deletedPages   []string
	deletedDomains []string
	tags           map[string][]string
}

type bookmarkCall struct {
	url   string
	tabID *int
}

var _ driven.PageIndex = (*mockPageIndex)(nil)

func (m *mockPageIndex) AddPage(_ context.Context, _ domain.Page) error {
	return m.mutationErr
}

func (m *mockPageIndex) Search(_ context.Context, _ []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	results := m.results
	if q.Skip > 0 {
		if q.Skip >= len(results) {
			return []domain.PageResult{}, nil
		}
		results = results[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(results) {
		results = results[:q.Limit]
	}
	return results, nil
}

func (m *mockPageIndex) PageCount(_ context.Context, _ []domain.Term, _ domain.SearchQuery) (int, error) {
	if m.searchErr != nil {
		return 0, m.searchErr
	}
	if m.count > 0 {
		return m.count, nil
	}
	return len(m.results), nil
}

func (m *mockPageIndex) DelPages(_ context.Context, urls []string) error {
	if m.mutationErr != nil {
		return m.mutationErr
	}
	m.deletedPages = append(m.deletedPages, urls...)
	return nil
}

func (m *mockPageIndex) DelPagesByDomain(_ context.Context, host string) error {
	if m.mutationErr != nil {
		return m.mutationErr
	}
	m.deletedDomains = append(m.deletedDomains, host)
	return nil
}

func (m *mockPageIndex) DelPagesByPattern(_ context.Context, _ string) error {
	return m.mutationErr
}

func (m *mockPageIndex) AddTag(_ context.Context, url, tag string) error {
	if m.mutationErr != nil {
		return m.mutationErr
	}
	if m.tags == nil {
		m.tags = make(map[string][]string)
	}
	m.tags[url] = append(m.tags[url], tag)
	return nil
}

func (m *mockPageIndex) DelTag(_ context.Context, _, _ string) error {
	return m.mutationErr
}

func (m *mockPageIndex) FetchPageTags(_ context.Context, url string) ([]string, error) {
	if m.mutationErr != nil {
		return nil, m.mutationErr
	}
	return m.tags[url], nil
}

func (m *mockPageIndex) AddBookmark(_ context.Context, url string, tabID *int) error {
	if m.mutationErr != nil {
		return m.mutationErr
	}
	m.addBookmarks = append(m.addBookmarks, bookmarkCall{url: url, tabID: tabID})
	return nil
}

func (m *mockPageIndex) DelBookmark(_ context.Context, url string) error {
	if m.mutationErr != nil {
		return m.mutationErr
	}
	m.delBookmarks = append(m.delBookmarks, url)
	return nil
}

func (m *mockPageIndex) AddVisit(_ context.Context, _ string, _ time.Time) error {
	return m.mutationErr
}

func (m *mockPageIndex) AddFavicon(_ context.Context, _ string, _ []byte) error {
	return m.mutationErr
}

func (m *mockPageIndex) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}

func (m *mockPageIndex) ExtendedSuggest(_ context.Context, _ string, _ int) ([]domain.Suggestion, error) {
	return nil, nil
}

// mockAnnotationStore implements driven.AnnotationStore for testing.
type mockAnnotationStore struct {
	annots  []domain.AnnotationResult
	grouped []domain.PageResult

	searchErr error

	searchCalls  int
	groupedCalls int
}

var _ driven.AnnotationStore = (*mockAnnotationStore)(nil)

func (m *mockAnnotationStore) Save(_ context.Context, _ *domain.AnnotationResult) error {
	return nil
}

func (m *mockAnnotationStore) Search(_ context.Context, _ []domain.Term, _ domain.SearchQuery) ([]domain.AnnotationResult, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.annots, nil
}

func (m *mockAnnotationStore) SearchGrouped(_ context.Context, _ []domain.Term, _ domain.SearchQuery) ([]domain.PageResult, error) {
	m.groupedCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.grouped, nil
}

func (m *mockAnnotationStore) ListForPage(_ context.Context, url string) ([]domain.AnnotationResult, error) {
	var out []domain.AnnotationResult
	for _, a := range m.annots {
		if a.PageURL == url {
			out = append(out, a)
		}
	}
	return out, nil
}

// stubParser implements driven.QueryParser with a fixed verdict: every
// whitespace-separated token becomes a term, and an empty term set is bad.
type stubParser struct{}

func (stubParser) Parse(raw string) domain.ParsedQuery {
	var terms []domain.Term
	start := -1
	for i, r := range raw {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				terms = append(terms, domain.Term(raw[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		terms = append(terms, domain.Term(raw[start:]))
	}
	return domain.ParsedQuery{Terms: terms, Bad: len(terms) == 0}
}

// mockTabTracker implements driven.TabTracker for testing.
type mockTabTracker struct {
	tab *domain.Tab
	err error
}

var _ driven.TabTracker = (*mockTabTracker)(nil)

func (m *mockTabTracker) ActiveTab(_ context.Context) (*domain.Tab, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tab, nil
}
