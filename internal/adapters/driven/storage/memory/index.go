// Package memory provides in-memory implementations of the driven
// storage ports. They back tests and small single-session deployments;
// the sqlite package provides the persistent twins.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// Ensure PageIndex implements the interface.
var _ driven.PageIndex = (*PageIndex)(nil)

// PageIndex is an in-memory implementation of driven.PageIndex.
type PageIndex struct {
	mu        sync.RWMutex
	pages     map[string]domain.Page
	bookmarks map[string]bool
	tags      map[string]map[string]bool
	visits    map[string][]time.Time
	favicons  map[string][]byte
}

// NewPageIndex creates a new in-memory page index.
func NewPageIndex() *PageIndex {
	return &PageIndex{
		pages:     make(map[string]domain.Page),
		bookmarks: make(map[string]bool),
		tags:      make(map[string]map[string]bool),
		visits:    make(map[string][]time.Time),
		favicons:  make(map[string][]byte),
	}
}

// AddPage adds or updates a page in the index.
func (i *PageIndex) AddPage(_ context.Context, page domain.Page) error {
	if page.URL == "" {
		return domain.ErrInvalidInput
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if page.IndexedAt.IsZero() {
		page.IndexedAt = time.Now()
	}
	i.pages[page.URL] = page
	return nil
}

// Search returns ranked page matches for the given terms and filters.
// The score is the fraction of query terms found in the page's title
// and text.
func (i *PageIndex) Search(_ context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	results := i.match(terms, q)

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].DisplayTime.After(results[b].DisplayTime)
	})

	if q.Skip > 0 {
		if q.Skip >= len(results) {
			return []domain.PageResult{}, nil
		}
		results = results[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(results) {
		results = results[:q.Limit]
	}
	return results, nil
}

// PageCount returns the number of matching pages, ignoring pagination.
func (i *PageIndex) PageCount(_ context.Context, terms []domain.Term, q domain.SearchQuery) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.match(terms, q)), nil
}

// match is the shared filter walk. Callers hold the read lock.
func (i *PageIndex) match(terms []domain.Term, q domain.SearchQuery) []domain.PageResult {
	results := make([]domain.PageResult, 0)

	for url, page := range i.pages {
		haystack := strings.ToLower(page.Title + " " + page.Text)
		hits := 0
		for _, term := range terms {
			if strings.Contains(haystack, string(term)) {
				hits++
			}
		}
		if len(terms) > 0 && hits == 0 {
			continue
		}

		if len(q.Domains) > 0 && !matchesDomain(url, q.Domains) {
			continue
		}
		if !i.hasAllTags(url, q.Tags) {
			continue
		}

		displayTime := i.displayTime(url, page)
		if !q.StartTime.IsZero() && displayTime.Before(q.StartTime) {
			continue
		}
		if !q.EndTime.IsZero() && displayTime.After(q.EndTime) {
			continue
		}

		score := 1.0
		if len(terms) > 0 {
			score = float64(hits) / float64(len(terms))
		}

		results = append(results, domain.PageResult{
			URL:         url,
			FullURL:     page.FullURL,
			Title:       page.Title,
			Score:       score,
			DisplayTime: displayTime,
			HasBookmark: i.bookmarks[url],
			Tags:        i.pageTags(url),
		})
	}
	return results
}

// displayTime is the page's latest visit, or its index time when the
// page was never visited.
func (i *PageIndex) displayTime(url string, page domain.Page) time.Time {
	visits := i.visits[url]
	if len(visits) == 0 {
		return page.IndexedAt
	}
	latest := visits[0]
	for _, v := range visits[1:] {
		if v.After(latest) {
			latest = v
		}
	}
	return latest
}

func (i *PageIndex) hasAllTags(url string, tags []string) bool {
	for _, tag := range tags {
		if !i.tags[url][tag] {
			return false
		}
	}
	return true
}

func (i *PageIndex) pageTags(url string) []string {
	set := i.tags[url]
	if len(set) == 0 {
		return nil
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func matchesDomain(url string, domains []string) bool {
	host := hostOf(url)
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// hostOf extracts the host part of a URL without the scheme, the www
// prefix, the path or the port.
func hostOf(url string) string {
	host := url
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// DelPages removes the given pages and their dependent records.
func (i *PageIndex) DelPages(_ context.Context, urls []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, url := range urls {
		i.deleteLocked(url)
	}
	return nil
}

// DelPagesByDomain removes every page under the given domain.
func (i *PageIndex) DelPagesByDomain(_ context.Context, host string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for url := range i.pages {
		if matchesDomain(url, []string{strings.ToLower(host)}) {
			i.deleteLocked(url)
		}
	}
	return nil
}

// DelPagesByPattern removes every page whose URL contains the pattern.
func (i *PageIndex) DelPagesByPattern(_ context.Context, pattern string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for url := range i.pages {
		if strings.Contains(url, pattern) {
			i.deleteLocked(url)
		}
	}
	return nil
}

func (i *PageIndex) deleteLocked(url string) {
	delete(i.pages, url)
	delete(i.bookmarks, url)
	delete(i.tags, url)
	delete(i.visits, url)
	delete(i.favicons, url)
}

// AddTag attaches a tag to a page.
func (i *PageIndex) AddTag(_ context.Context, url, tag string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.tags[url] == nil {
		i.tags[url] = make(map[string]bool)
	}
	i.tags[url][tag] = true
	return nil
}

// DelTag detaches a tag from a page.
func (i *PageIndex) DelTag(_ context.Context, url, tag string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.tags[url], tag)
	return nil
}

// FetchPageTags returns the tags attached to a page.
func (i *PageIndex) FetchPageTags(_ context.Context, url string) ([]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.pageTags(url), nil
}

// AddBookmark marks a page as bookmarked. The tab identifier is
// accepted for contract parity but not persisted by this adapter.
func (i *PageIndex) AddBookmark(_ context.Context, url string, _ *int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.bookmarks[url] = true
	return nil
}

// DelBookmark removes a page's bookmark.
func (i *PageIndex) DelBookmark(_ context.Context, url string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.bookmarks[url] {
		return domain.ErrNotFound
	}
	delete(i.bookmarks, url)
	return nil
}

// AddVisit records a visit to a page.
func (i *PageIndex) AddVisit(_ context.Context, url string, at time.Time) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visits[url] = append(i.visits[url], at)
	return nil
}

// AddFavicon stores a page's favicon.
func (i *PageIndex) AddFavicon(_ context.Context, url string, icon []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.favicons[url] = icon
	return nil
}

// Suggest returns term completions for a prefix, drawn from indexed
// page titles.
func (i *PageIndex) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, page := range i.pages {
		for _, word := range strings.Fields(strings.ToLower(page.Title)) {
			if !strings.HasPrefix(word, prefix) || seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, word)
		}
	}
	sort.Strings(out)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ExtendedSuggest returns completions for a prefix across terms, tags
// and domains.
func (i *PageIndex) ExtendedSuggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error) {
	terms, err := i.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var out []domain.Suggestion
	for _, t := range terms {
		out = append(out, domain.Suggestion{Value: t, Type: "term"})
	}

	seenTags := make(map[string]bool)
	for _, set := range i.tags {
		for tag := range set {
			if strings.HasPrefix(tag, prefix) && !seenTags[tag] {
				seenTags[tag] = true
				out = append(out, domain.Suggestion{Value: tag, Type: "tag"})
			}
		}
	}

	seenHosts := make(map[string]bool)
	for url := range i.pages {
		host := hostOf(url)
		if strings.HasPrefix(host, prefix) && !seenHosts[host] {
			seenHosts[host] = true
			out = append(out, domain.Suggestion{Value: host, Type: "domain"})
		}
	}

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
