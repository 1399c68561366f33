package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Memex resources.
	uriScheme = "memex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for the annotations belonging to a page.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{url}/annotations",
		Name:        "page-annotations",
		Description: "Annotations attached to a specific page",
		MIMEType:    "application/json",
	}, s.handleAnnotationsResource)
}

// handleAnnotationsResource returns the annotations of a specific page.
func (s *Server) handleAnnotationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	url := extractPageURL(req.Params.URI)
	if url == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	annots, err := s.ports.Index.ListAnnotations(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	infos := make([]AnnotationOutput, len(annots))
	for i := range annots {
		infos[i] = annotationOutput(annots[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotations: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPageURL extracts the page URL from a URI like memex://pages/{url}/annotations.
func extractPageURL(uri string) string {
	const prefix = uriScheme + "pages/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
