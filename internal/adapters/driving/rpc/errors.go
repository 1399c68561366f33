// Package rpc exposes the search and index operations as a fixed set of
// named MCP tools for remote invocation by a front end. Each tool name is
// part of the wire contract and must not change independently of clients.
package rpc

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("rpc: search service is required")

// ErrMissingIndexService is returned when the index service is not provided.
var ErrMissingIndexService = errors.New("rpc: index service is required")
