package rpc

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TagInput is the input schema for addTag and delTag.
type TagInput struct {
	URL string `json:"url" jsonschema:"the page URL the tag belongs to"`
	Tag string `json:"tag" jsonschema:"the tag name"`
}

// PageInput is the input schema for tools addressing a single page.
type PageInput struct {
	URL string `json:"url" jsonschema:"the page URL"`
}

// PagesInput is the input schema for delPages.
type PagesInput struct {
	URLs []string `json:"urls" jsonschema:"the page URLs to delete"`
}

// DomainInput is the input schema for delPagesByDomain.
type DomainInput struct {
	Domain string `json:"domain" jsonschema:"the domain whose pages should be deleted"`
}

// PatternInput is the input schema for delPagesByPattern.
type PatternInput struct {
	Pattern string `json:"pattern" jsonschema:"the URL substring pattern whose pages should be deleted"`
}

// BookmarkInput is the input schema for addBookmark.
type BookmarkInput struct {
	URL   string `json:"url" jsonschema:"the page URL to bookmark"`
	TabID *int   `json:"tab_id,omitempty" jsonschema:"the browser tab the bookmark was created from, if known"`
}

// SuggestInput is the input schema for suggest and extendedSuggest.
type SuggestInput struct {
	Prefix string `json:"prefix" jsonschema:"the prefix to complete"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 10)"`
}

// AckOutput is the output schema for mutation tools.
type AckOutput struct {
	OK bool `json:"ok"`
}

// TagsOutput is the output schema for fetchPageTags.
type TagsOutput struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// SuggestOutput is the output schema for suggest.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestionOutput is a single typed completion candidate.
type SuggestionOutput struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ExtendedSuggestOutput is the output schema for extendedSuggest.
type ExtendedSuggestOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
}

// CountOutput is the output schema for getMatchingPageCount.
type CountOutput struct {
	Count int `json:"count"`
}

// AnnotationListOutput is the output schema for listAnnotations.
type AnnotationListOutput struct {
	URL         string             `json:"url"`
	Annotations []AnnotationOutput `json:"annotations"`
}

// registerIndexTools registers the index mutation and lookup tools.
func (s *Server) registerIndexTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "addTag",
		Description: "Attach a tag to a page",
	}, s.handleAddTag)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delTag",
		Description: "Detach a tag from a page",
	}, s.handleDelTag)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetchPageTags",
		Description: "List the tags attached to a page",
	}, s.handleFetchPageTags)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest",
		Description: "Complete a search term prefix",
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extendedSuggest",
		Description: "Complete a prefix across terms, tags and domains",
	}, s.handleExtendedSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delPages",
		Description: "Delete the given pages from the index",
	}, s.handleDelPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delPagesByDomain",
		Description: "Delete every indexed page under a domain",
	}, s.handleDelPagesByDomain)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delPagesByPattern",
		Description: "Delete every indexed page whose URL contains a pattern",
	}, s.handleDelPagesByPattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "addBookmark",
		Description: "Mark a page as bookmarked",
	}, s.handleAddBookmark)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delBookmark",
		Description: "Remove a page's bookmark",
	}, s.handleDelBookmark)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "getMatchingPageCount",
		Description: "Count the pages matching a query",
	}, s.handleGetMatchingPageCount)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "listAnnotations",
		Description: "List every annotation belonging to a page",
	}, s.handleListAnnotations)
}

func (s *Server) handleAddTag(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TagInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.AddTag(ctx, input.URL, input.Tag); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleDelTag(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TagInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.DelTag(ctx, input.URL, input.Tag); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleFetchPageTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	tags, err := s.ports.Index.FetchPageTags(ctx, input.URL)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, TagsOutput{URL: input.URL, Tags: tags}, nil
}

func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	suggestions, err := s.ports.Index.Suggest(ctx, input.Prefix, input.Limit)
	if err != nil {
		return nil, SuggestOutput{}, err
	}
	return nil, SuggestOutput{Suggestions: suggestions}, nil
}

func (s *Server) handleExtendedSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, ExtendedSuggestOutput, error) {
	suggestions, err := s.ports.Index.ExtendedSuggest(ctx, input.Prefix, input.Limit)
	if err != nil {
		return nil, ExtendedSuggestOutput{}, err
	}

	output := ExtendedSuggestOutput{
		Suggestions: make([]SuggestionOutput, len(suggestions)),
	}
	for i, sug := range suggestions {
		output.Suggestions[i] = SuggestionOutput{Value: sug.Value, Type: sug.Type}
	}
	return nil, output, nil
}

func (s *Server) handleDelPages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PagesInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.DelPages(ctx, input.URLs); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleDelPagesByDomain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DomainInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.DelPagesByDomain(ctx, input.Domain); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleDelPagesByPattern(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PatternInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.DelPagesByPattern(ctx, input.Pattern); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleAddBookmark(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BookmarkInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.AddBookmark(ctx, input.URL, input.TabID); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleDelBookmark(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Index.DelBookmark(ctx, input.URL); err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleGetMatchingPageCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, CountOutput, error) {
	q, err := buildQuery(input)
	if err != nil {
		return nil, CountOutput{}, err
	}

	count, err := s.ports.Index.GetMatchingPageCount(ctx, q)
	if err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: count}, nil
}

func (s *Server) handleListAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, AnnotationListOutput, error) {
	annots, err := s.ports.Index.ListAnnotations(ctx, input.URL)
	if err != nil {
		return nil, AnnotationListOutput{}, err
	}

	output := AnnotationListOutput{
		URL:         input.URL,
		Annotations: make([]AnnotationOutput, len(annots)),
	}
	for i := range annots {
		output.Annotations[i] = annotationOutput(annots[i])
	}
	return nil, output, nil
}
