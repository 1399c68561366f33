// Package queryparser turns raw query text into normalised search terms.
// It recognises two inline filters, site:<domain> and #<tag>, lowercases
// and de-duplicates terms, and drops stopwords and fragments too short
// to match anything. A query that yields no usable terms, or whose
// filter syntax is malformed, is flagged as non-searchable.
package queryparser

import (
	"strings"
	"unicode"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// minTermLength is the shortest token worth indexing.
const minTermLength = 2

// Ensure Parser implements the interface.
var _ driven.QueryParser = (*Parser)(nil)

// Parser is the default query parser.
type Parser struct{}

// New creates a query parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts terms and inline filters from raw query text.
func (p *Parser) Parse(raw string) domain.ParsedQuery {
	var parsed domain.ParsedQuery

	seen := make(map[string]bool)
	for _, field := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(field, "site:"):
			host := strings.ToLower(strings.TrimPrefix(field, "site:"))
			if host == "" {
				parsed.Bad = true
				return parsed
			}
			parsed.Domains = append(parsed.Domains, host)

		case strings.HasPrefix(field, "#"):
			tag := strings.ToLower(strings.TrimPrefix(field, "#"))
			if tag == "" {
				parsed.Bad = true
				return parsed
			}
			parsed.Tags = append(parsed.Tags, tag)

		default:
			term := normalise(field)
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			parsed.Terms = append(parsed.Terms, domain.Term(term))
		}
	}

	if len(parsed.Terms) == 0 {
		parsed.Bad = true
	}
	return parsed
}

// normalise lowercases a token and strips everything that is not a
// letter or digit. Stopwords and too-short fragments normalise to "".
func normalise(field string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(field) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	term := b.String()
	if len(term) < minTermLength || stopwords[term] {
		return ""
	}
	return term
}
