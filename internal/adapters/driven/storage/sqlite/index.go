package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// pageIndex implements driven.PageIndex on top of the SQLite store.
type pageIndex struct {
	store *Store
}

var _ driven.PageIndex = (*pageIndex)(nil)

// AddPage adds or updates a page in the index.
func (i *pageIndex) AddPage(ctx context.Context, page domain.Page) error {
	if page.URL == "" {
		return domain.ErrInvalidInput
	}
	if page.IndexedAt.IsZero() {
		page.IndexedAt = time.Now().UTC()
	}

	_, err := i.store.db.ExecContext(ctx, `
		INSERT INTO pages (url, full_url, title, text, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			full_url = excluded.full_url,
			title = excluded.title,
			text = excluded.text
	`, page.URL, page.FullURL, page.Title, page.Text, page.IndexedAt)

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// candidate is an intermediate row before scoring and filtering.
type candidate struct {
	page        domain.Page
	displayTime time.Time
	hasBookmark bool
}

// Search returns ranked page matches for the given terms and filters.
func (i *pageIndex) Search(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	results, err := i.match(ctx, terms, q)
	if err != nil {
		return nil, err
	}

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
func (i *pageIndex) PageCount(ctx context.Context, terms []domain.Term, q domain.SearchQuery) (int, error) {
	results, err := i.match(ctx, terms, q)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// match fetches term candidates from SQLite and applies the remaining
// filters. Term scoring is the fraction of query terms present in the
// page's title and text.
func (i *pageIndex) match(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	query := `
		SELECT p.url, p.full_url, p.title, p.text, p.indexed_at,
		       (SELECT MAX(visited_at) FROM visits v WHERE v.url = p.url),
		       EXISTS(SELECT 1 FROM bookmarks b WHERE b.url = p.url)
		FROM pages p
	`
	var args []any
	if len(terms) > 0 {
		var likes []string
		for _, term := range terms {
			likes = append(likes, "lower(p.title || ' ' || p.text) LIKE ?")
			args = append(args, "%"+strings.ToLower(string(term))+"%")
		}
		query += " WHERE " + strings.Join(likes, " OR ")
	}

	rows, err := i.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var candidates []candidate
	for rows.Next() {
		var c candidate
		var lastVisit sql.NullTime
		if err := rows.Scan(&c.page.URL, &c.page.FullURL, &c.page.Title, &c.page.Text,
			&c.page.IndexedAt, &lastVisit, &c.hasBookmark); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		c.displayTime = c.page.IndexedAt
		if lastVisit.Valid {
			c.displayTime = lastVisit.Time
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	results := make([]domain.PageResult, 0, len(candidates))
	for _, c := range candidates {
		if len(q.Domains) > 0 && !matchesDomain(c.page.URL, q.Domains) {
			continue
		}
		if !q.StartTime.IsZero() && c.displayTime.Before(q.StartTime) {
			continue
		}
		if !q.EndTime.IsZero() && c.displayTime.After(q.EndTime) {
			continue
		}

		tags, err := i.FetchPageTags(ctx, c.page.URL)
		if err != nil {
			return nil, err
		}
		if !containsAll(tags, q.Tags) {
			continue
		}

		score := 1.0
		if len(terms) > 0 {
			haystack := strings.ToLower(c.page.Title + " " + c.page.Text)
			hits := 0
			for _, term := range terms {
				if strings.Contains(haystack, string(term)) {
					hits++
				}
			}
			score = float64(hits) / float64(len(terms))
		}

		results = append(results, domain.PageResult{
			URL:         c.page.URL,
			FullURL:     c.page.FullURL,
			Title:       c.page.Title,
			Score:       score,
			DisplayTime: c.displayTime,
			HasBookmark: c.hasBookmark,
			Tags:        tags,
		})
	}
	return results, nil
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DelPages removes the given pages and their dependent records.
func (i *pageIndex) DelPages(ctx context.Context, urls []string) error {
	for _, url := range urls {
		if err := i.deletePage(ctx, url); err != nil {
			return err
		}
	}
	return nil
}

func (i *pageIndex) deletePage(ctx context.Context, url string) error {
	for _, stmt := range []string{
		"DELETE FROM pages WHERE url = ?",
		"DELETE FROM bookmarks WHERE url = ?",
		"DELETE FROM tags WHERE url = ?",
		"DELETE FROM visits WHERE url = ?",
		"DELETE FROM favicons WHERE url = ?",
	} {
		if _, err := i.store.db.ExecContext(ctx, stmt, url); err != nil {
			return fmt.Errorf("deleting page %s: %w", url, err)
		}
	}
	return nil
}

// DelPagesByDomain removes every page under the given domain.
func (i *pageIndex) DelPagesByDomain(ctx context.Context, host string) error {
	urls, err := i.urlsWhere(ctx, func(url string) bool {
		return matchesDomain(url, []string{strings.ToLower(host)})
	})
	if err != nil {
		return err
	}
	return i.DelPages(ctx, urls)
}

// DelPagesByPattern removes every page whose URL contains the pattern.
func (i *pageIndex) DelPagesByPattern(ctx context.Context, pattern string) error {
	urls, err := i.urlsWhere(ctx, func(url string) bool {
		return strings.Contains(url, pattern)
	})
	if err != nil {
		return err
	}
	return i.DelPages(ctx, urls)
}

func (i *pageIndex) urlsWhere(ctx context.Context, keep func(string) bool) ([]string, error) {
	rows, err := i.store.db.QueryContext(ctx, "SELECT url FROM pages")
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		if keep(url) {
			urls = append(urls, url)
		}
	}
	return urls, rows.Err()
}

// AddTag attaches a tag to a page.
func (i *pageIndex) AddTag(ctx context.Context, url, tag string) error {
	_, err := i.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (url, tag) VALUES (?, ?)", url, tag)
	if err != nil {
		return fmt.Errorf("adding tag: %w", err)
	}
	return nil
}

// DelTag detaches a tag from a page.
func (i *pageIndex) DelTag(ctx context.Context, url, tag string) error {
	_, err := i.store.db.ExecContext(ctx,
		"DELETE FROM tags WHERE url = ? AND tag = ?", url, tag)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

// FetchPageTags returns the tags attached to a page.
func (i *pageIndex) FetchPageTags(ctx context.Context, url string) ([]string, error) {
	rows, err := i.store.db.QueryContext(ctx,
		"SELECT tag FROM tags WHERE url = ? ORDER BY tag", url)
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// AddBookmark marks a page as bookmarked.
func (i *pageIndex) AddBookmark(ctx context.Context, url string, tabID *int) error {
	var tab sql.NullInt64
	if tabID != nil {
		tab = sql.NullInt64{Int64: int64(*tabID), Valid: true}
	}
	_, err := i.store.db.ExecContext(ctx, `
		INSERT INTO bookmarks (url, tab_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET tab_id = excluded.tab_id
	`, url, tab, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	return nil
}

// DelBookmark removes a page's bookmark.
func (i *pageIndex) DelBookmark(ctx context.Context, url string) error {
	res, err := i.store.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE url = ?", url)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddVisit records a visit to a page.
func (i *pageIndex) AddVisit(ctx context.Context, url string, at time.Time) error {
	_, err := i.store.db.ExecContext(ctx,
		"INSERT INTO visits (url, visited_at) VALUES (?, ?)", url, at.UTC())
	if err != nil {
		return fmt.Errorf("adding visit: %w", err)
	}
	return nil
}

// AddFavicon stores a page's favicon.
func (i *pageIndex) AddFavicon(ctx context.Context, url string, icon []byte) error {
	_, err := i.store.db.ExecContext(ctx, `
		INSERT INTO favicons (url, icon) VALUES (?, ?)
		ON CONFLICT(url) DO UPDATE SET icon = excluded.icon
	`, url, icon)
	if err != nil {
		return fmt.Errorf("adding favicon: %w", err)
	}
	return nil
}

// Suggest returns term completions for a prefix, drawn from indexed
// page titles.
func (i *pageIndex) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := i.store.db.QueryContext(ctx, "SELECT title FROM pages")
	if err != nil {
		return nil, fmt.Errorf("listing titles: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var out []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		for _, word := range strings.Fields(strings.ToLower(title)) {
			if strings.HasPrefix(word, prefix) && !seen[word] {
				seen[word] = true
				out = append(out, word)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(out)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ExtendedSuggest returns completions for a prefix across terms, tags
// and domains.
func (i *pageIndex) ExtendedSuggest(ctx context.Context, prefix string, limit int) ([]domain.Suggestion, error) {
	terms, err := i.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}

	var out []domain.Suggestion
	for _, t := range terms {
		out = append(out, domain.Suggestion{Value: t, Type: "term"})
	}

	rows, err := i.store.db.QueryContext(ctx,
		"SELECT DISTINCT tag FROM tags WHERE tag LIKE ? ORDER BY tag", prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		out = append(out, domain.Suggestion{Value: tag, Type: "tag"})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	urls, err := i.urlsWhere(ctx, func(string) bool { return true })
	if err != nil {
		return nil, err
	}
	seenHosts := make(map[string]bool)
	for _, url := range urls {
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
