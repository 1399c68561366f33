package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cori/Memex/internal/core/domain"
)

// SearchInput is the input schema for the search tools.
type SearchInput struct {
	Query        string   `json:"query" jsonschema:"the search query text, may contain site: and # filters"`
	ContentTypes []string `json:"content_types,omitempty" jsonschema:"which sources to search: pages, annotations, or both (default both)"`
	Limit        int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Skip         int      `json:"skip,omitempty" jsonschema:"number of results to skip for pagination"`
	StartTime    string   `json:"start_time,omitempty" jsonschema:"RFC3339 lower bound on result time"`
	EndTime      string   `json:"end_time,omitempty" jsonschema:"RFC3339 upper bound on result time"`
	Domains      []string `json:"domains,omitempty" jsonschema:"restrict results to these domains"`
	Tags         []string `json:"tags,omitempty" jsonschema:"restrict results to pages carrying all of these tags"`
}

// SearchOutput is the output schema for page-level search tools.
type SearchOutput struct {
	Results []PageResultOutput `json:"results"`
	Count   int                `json:"count"`
}

// PageResultOutput represents a single page-level search result.
type PageResultOutput struct {
	URL         string             `json:"url"`
	FullURL     string             `json:"full_url,omitempty"`
	Title       string             `json:"title"`
	Score       float64            `json:"score"`
	DisplayTime string             `json:"display_time,omitempty"`
	HasBookmark bool               `json:"has_bookmark"`
	Tags        []string           `json:"tags,omitempty"`
	Annotations []AnnotationOutput `json:"annotations,omitempty"`
}

// AnnotationOutput represents a single annotation result.
type AnnotationOutput struct {
	ID        string   `json:"id"`
	PageURL   string   `json:"page_url"`
	PageTitle string   `json:"page_title,omitempty"`
	Body      string   `json:"body"`
	Comment   string   `json:"comment,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// AnnotationSearchOutput is the output schema for searchAnnotations.
type AnnotationSearchOutput struct {
	Results []AnnotationOutput `json:"results"`
	Count   int                `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
// The tool names form the wire contract with front-end clients.
func (s *Server) registerTools() {
	// search is the legacy name for the routed page search.
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed pages and annotations, returning merged page-level results",
	}, s.handleSearchPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "searchPages",
		Description: "Search indexed pages and annotations, returning merged page-level results",
	}, s.handleSearchPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "searchAnnotations",
		Description: "Search annotations, returning annotation-level results",
	}, s.handleSearchAnnotations)

	s.registerIndexTools()
}

// handleSearchPages handles the search and searchPages tool invocations.
func (s *Server) handleSearchPages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	q, err := buildQuery(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := s.ports.Search.SearchPages(ctx, q)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]PageResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = pageResultOutput(results[i])
	}
	return nil, output, nil
}

// handleSearchAnnotations handles the searchAnnotations tool invocation.
func (s *Server) handleSearchAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, AnnotationSearchOutput, error) {
	q, err := buildQuery(input)
	if err != nil {
		return nil, AnnotationSearchOutput{}, err
	}

	results, err := s.ports.Search.SearchAnnotations(ctx, q)
	if err != nil {
		return nil, AnnotationSearchOutput{}, err
	}

	output := AnnotationSearchOutput{
		Results: make([]AnnotationOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = annotationOutput(results[i])
	}
	return nil, output, nil
}

// buildQuery translates the wire-level search input into a domain query.
func buildQuery(input SearchInput) (domain.SearchQuery, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	q := domain.SearchQuery{
		Raw:     input.Query,
		Limit:   limit,
		Skip:    input.Skip,
		Domains: input.Domains,
		Tags:    input.Tags,
	}

	for _, ct := range input.ContentTypes {
		switch ct {
		case "pages":
			q.ContentTypes.Pages = true
		case "annotations":
			q.ContentTypes.Annotations = true
		default:
			return domain.SearchQuery{}, fmt.Errorf("unknown content type %q", ct)
		}
	}

	if input.StartTime != "" {
		t, err := time.Parse(time.RFC3339, input.StartTime)
		if err != nil {
			return domain.SearchQuery{}, fmt.Errorf("parsing start_time: %w", err)
		}
		q.StartTime = t
	}
	if input.EndTime != "" {
		t, err := time.Parse(time.RFC3339, input.EndTime)
		if err != nil {
			return domain.SearchQuery{}, fmt.Errorf("parsing end_time: %w", err)
		}
		q.EndTime = t
	}

	return q, nil
}

func pageResultOutput(r domain.PageResult) PageResultOutput {
	out := PageResultOutput{
		URL:         r.URL,
		FullURL:     r.FullURL,
		Title:       r.Title,
		Score:       r.Score,
		HasBookmark: r.HasBookmark,
		Tags:        r.Tags,
	}
	if !r.DisplayTime.IsZero() {
		out.DisplayTime = r.DisplayTime.Format(time.RFC3339)
	}
	if len(r.Annotations) > 0 {
		out.Annotations = make([]AnnotationOutput, len(r.Annotations))
		for i := range r.Annotations {
			out.Annotations[i] = annotationOutput(r.Annotations[i])
		}
	}
	return out
}

func annotationOutput(a domain.AnnotationResult) AnnotationOutput {
	out := AnnotationOutput{
		ID:        a.ID,
		PageURL:   a.PageURL,
		PageTitle: a.PageTitle,
		Body:      a.Body,
		Comment:   a.Comment,
		Tags:      a.Tags,
	}
	if !a.CreatedAt.IsZero() {
		out.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return out
}
