// Package html extracts indexable pages from raw HTML. It strips tags,
// scripts and styles, decodes entities, and pulls the page title from
// the <title> tag for clean searchable content.
package html
