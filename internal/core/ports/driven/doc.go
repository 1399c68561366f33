// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PageIndex: full-text page index with its mutation surface
//     (pages, tags, bookmarks, visits, favicons, suggestions)
//   - AnnotationStore: annotation persistence and search
//   - QueryParser: raw query text to normalised terms
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TabTracker: active browser tab lookup. Without it, bookmark
//     creation is never correlated with a tab.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
