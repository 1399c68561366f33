package rpc

import (
	"context"
	"time"

	"github.com/cori/Memex/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	pages     []domain.PageResult
	annots    []domain.AnnotationResult
	lastQuery domain.SearchQuery
	err       error
}

func (m *mockSearchService) SearchPages(
	_ context.Context,
	q domain.SearchQuery,
) ([]domain.PageResult, error) {
	m.lastQuery = q
	return m.pages, m.err
}

func (m *mockSearchService) SearchAnnotations(
	_ context.Context,
	q domain.SearchQuery,
) ([]domain.AnnotationResult, error) {
	m.lastQuery = q
	return m.annots, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	tags        []string
	suggestions []string
	extended    []domain.Suggestion
	annots      []domain.AnnotationResult
	count       int
	err         error

	addedTags    []string
	deletedTags  []string
	deletedURLs  []string
	bookmarked   []string
	unbookmarked []string
	lastTabID    *int
}

func (m *mockIndexService) AddPage(_ context.Context, _ domain.Page) error {
	return m.err
}

func (m *mockIndexService) AddVisit(_ context.Context, _ string, _ time.Time) error {
	return m.err
}

func (m *mockIndexService) AddFavicon(_ context.Context, _ string, _ []byte) error {
	return m.err
}

func (m *mockIndexService) AddTag(_ context.Context, url, tag string) error {
	m.addedTags = append(m.addedTags, url+":"+tag)
	return m.err
}

func (m *mockIndexService) DelTag(_ context.Context, url, tag string) error {
	m.deletedTags = append(m.deletedTags, url+":"+tag)
	return m.err
}

func (m *mockIndexService) FetchPageTags(_ context.Context, _ string) ([]string, error) {
	return m.tags, m.err
}

func (m *mockIndexService) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	return m.suggestions, m.err
}

func (m *mockIndexService) ExtendedSuggest(_ context.Context, _ string, _ int) ([]domain.Suggestion, error) {
	return m.extended, m.err
}

func (m *mockIndexService) DelPages(_ context.Context, urls []string) error {
	m.deletedURLs = append(m.deletedURLs, urls...)
	return m.err
}

func (m *mockIndexService) DelPagesByDomain(_ context.Context, host string) error {
	m.deletedURLs = append(m.deletedURLs, host)
	return m.err
}

func (m *mockIndexService) DelPagesByPattern(_ context.Context, pattern string) error {
	m.deletedURLs = append(m.deletedURLs, pattern)
	return m.err
}

func (m *mockIndexService) AddBookmark(_ context.Context, url string, tabID *int) error {
	m.bookmarked = append(m.bookmarked, url)
	m.lastTabID = tabID
	return m.err
}

func (m *mockIndexService) DelBookmark(_ context.Context, url string) error {
	m.unbookmarked = append(m.unbookmarked, url)
	return m.err
}

func (m *mockIndexService) GetMatchingPageCount(_ context.Context, _ domain.SearchQuery) (int, error) {
	return m.count, m.err
}

func (m *mockIndexService) ListAnnotations(_ context.Context, _ string) ([]domain.AnnotationResult, error) {
	return m.annots, m.err
}
