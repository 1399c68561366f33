package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cori/Memex/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockSearchService, index *mockIndexService) *Server {
	t.Helper()
	if search == nil {
		search = &mockSearchService{}
	}
	if index == nil {
		index = &mockIndexService{}
	}
	server, err := NewServer(&Ports{Search: search, Index: index})
	require.NoError(t, err)
	return server
}

func TestServer_handleSearchPages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page results", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		mockSearch := &mockSearchService{
			pages: []domain.PageResult{
				{
					URL:         "a.com/article",
					FullURL:     "https://a.com/article",
					Title:       "Test Article",
					Score:       0.95,
					DisplayTime: created,
					HasBookmark: true,
					Tags:        []string{"research"},
					Annotations: []domain.AnnotationResult{
						{ID: "an-1", PageURL: "a.com/article", Body: "highlight"},
					},
				},
			},
		}
		server := newTestServer(t, mockSearch, nil)

		input := SearchInput{Query: "test", Limit: 10}
		_, output, err := server.handleSearchPages(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "a.com/article", output.Results[0].URL)
		assert.Equal(t, "Test Article", output.Results[0].Title)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.True(t, output.Results[0].HasBookmark)
		assert.Equal(t, created.Format(time.RFC3339), output.Results[0].DisplayTime)
		require.Len(t, output.Results[0].Annotations, 1)
		assert.Equal(t, "an-1", output.Results[0].Annotations[0].ID)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, mockSearch, nil)

		_, _, err := server.handleSearchPages(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 10, mockSearch.lastQuery.Limit)
	})

	t.Run("content types are forwarded", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, mockSearch, nil)

		input := SearchInput{Query: "test", ContentTypes: []string{"pages"}}
		_, _, err := server.handleSearchPages(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, mockSearch.lastQuery.ContentTypes.PagesOnly())
	})

	t.Run("unknown content type is rejected", func(t *testing.T) {
		server := newTestServer(t, nil, nil)

		input := SearchInput{Query: "test", ContentTypes: []string{"videos"}}
		_, _, err := server.handleSearchPages(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown content type")
	})

	t.Run("malformed start time is rejected", func(t *testing.T) {
		server := newTestServer(t, nil, nil)

		input := SearchInput{Query: "test", StartTime: "yesterday"}
		_, _, err := server.handleSearchPages(ctx, nil, input)

		require.Error(t, err)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("index unavailable")}
		server := newTestServer(t, mockSearch, nil)

		_, _, err := server.handleSearchPages(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "index unavailable")
	})
}

func TestServer_handleSearchAnnotations(t *testing.T) {
	ctx := context.Background()

	t.Run("returns annotation results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			annots: []domain.AnnotationResult{
				{ID: "an-1", PageURL: "a.com", Body: "highlight", Comment: "note"},
				{ID: "an-2", PageURL: "b.com", Body: "other"},
			},
		}
		server := newTestServer(t, mockSearch, nil)

		_, output, err := server.handleSearchAnnotations(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "an-1", output.Results[0].ID)
		assert.Equal(t, "note", output.Results[0].Comment)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("annotations unavailable")}
		server := newTestServer(t, mockSearch, nil)

		_, _, err := server.handleSearchAnnotations(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
	})
}

func TestServer_indexTools(t *testing.T) {
	ctx := context.Background()

	t.Run("addTag and delTag forward to the index service", func(t *testing.T) {
		mockIndex := &mockIndexService{}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleAddTag(ctx, nil, TagInput{URL: "a.com", Tag: "research"})
		require.NoError(t, err)
		assert.True(t, out.OK)

		_, out, err = server.handleDelTag(ctx, nil, TagInput{URL: "a.com", Tag: "research"})
		require.NoError(t, err)
		assert.True(t, out.OK)

		assert.Equal(t, []string{"a.com:research"}, mockIndex.addedTags)
		assert.Equal(t, []string{"a.com:research"}, mockIndex.deletedTags)
	})

	t.Run("fetchPageTags returns tags", func(t *testing.T) {
		mockIndex := &mockIndexService{tags: []string{"go", "search"}}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleFetchPageTags(ctx, nil, PageInput{URL: "a.com"})
		require.NoError(t, err)
		assert.Equal(t, "a.com", out.URL)
		assert.Equal(t, []string{"go", "search"}, out.Tags)
	})

	t.Run("suggest returns completions", func(t *testing.T) {
		mockIndex := &mockIndexService{suggestions: []string{"shark", "sharpen"}}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleSuggest(ctx, nil, SuggestInput{Prefix: "sha"})
		require.NoError(t, err)
		assert.Equal(t, []string{"shark", "sharpen"}, out.Suggestions)
	})

	t.Run("extendedSuggest returns typed completions", func(t *testing.T) {
		mockIndex := &mockIndexService{
			extended: []domain.Suggestion{
				{Value: "shark", Type: "term"},
				{Value: "sharks", Type: "tag"},
			},
		}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleExtendedSuggest(ctx, nil, SuggestInput{Prefix: "sha"})
		require.NoError(t, err)
		require.Len(t, out.Suggestions, 2)
		assert.Equal(t, "term", out.Suggestions[0].Type)
		assert.Equal(t, "tag", out.Suggestions[1].Type)
	})

	t.Run("delete tools forward their arguments", func(t *testing.T) {
		mockIndex := &mockIndexService{}
		server := newTestServer(t, nil, mockIndex)

		_, _, err := server.handleDelPages(ctx, nil, PagesInput{URLs: []string{"a.com", "b.com"}})
		require.NoError(t, err)
		_, _, err = server.handleDelPagesByDomain(ctx, nil, DomainInput{Domain: "example.com"})
		require.NoError(t, err)
		_, _, err = server.handleDelPagesByPattern(ctx, nil, PatternInput{Pattern: "/drafts/"})
		require.NoError(t, err)

		assert.Equal(t, []string{"a.com", "b.com", "example.com", "/drafts/"}, mockIndex.deletedURLs)
	})

	t.Run("addBookmark forwards the tab id", func(t *testing.T) {
		mockIndex := &mockIndexService{}
		server := newTestServer(t, nil, mockIndex)

		tabID := 7
		_, out, err := server.handleAddBookmark(ctx, nil, BookmarkInput{URL: "a.com", TabID: &tabID})
		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Equal(t, []string{"a.com"}, mockIndex.bookmarked)
		require.NotNil(t, mockIndex.lastTabID)
		assert.Equal(t, 7, *mockIndex.lastTabID)
	})

	t.Run("delBookmark propagates not found", func(t *testing.T) {
		mockIndex := &mockIndexService{err: domain.ErrNotFound}
		server := newTestServer(t, nil, mockIndex)

		_, _, err := server.handleDelBookmark(ctx, nil, PageInput{URL: "a.com"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("getMatchingPageCount returns the count", func(t *testing.T) {
		mockIndex := &mockIndexService{count: 42}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleGetMatchingPageCount(ctx, nil, SearchInput{Query: "test"})
		require.NoError(t, err)
		assert.Equal(t, 42, out.Count)
	})

	t.Run("listAnnotations returns annotations", func(t *testing.T) {
		mockIndex := &mockIndexService{
			annots: []domain.AnnotationResult{
				{ID: "an-1", PageURL: "a.com", Body: "first"},
				{ID: "an-2", PageURL: "a.com", Body: "second"},
			},
		}
		server := newTestServer(t, nil, mockIndex)

		_, out, err := server.handleListAnnotations(ctx, nil, PageInput{URL: "a.com"})
		require.NoError(t, err)
		assert.Equal(t, "a.com", out.URL)
		require.Len(t, out.Annotations, 2)
		assert.Equal(t, "an-1", out.Annotations[0].ID)
	})
}
