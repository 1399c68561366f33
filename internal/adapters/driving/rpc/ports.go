package rpc

import (
	"github.com/cori/Memex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the RPC server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides page and annotation search.
	Search driving.SearchService

	// Index provides index mutations, suggestions and lookups.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Index == nil {
		return ErrMissingIndexService
	}
	return nil
}
