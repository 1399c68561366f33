// Package normalisers provides format-specific text extraction for page
// ingestion. Each normaliser knows how to turn one raw format into the
// title and body text stored in the page index.
package normalisers
