package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// annotationStore implements driven.AnnotationStore on top of the
// SQLite store.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

// Save stores an annotation. An empty ID is assigned on insert.
func (s *annotationStore) Save(ctx context.Context, annot *domain.AnnotationResult) error {
	if annot.PageURL == "" {
		return domain.ErrInvalidInput
	}
	if annot.ID == "" {
		annot.ID = uuid.NewString()
	}
	if annot.CreatedAt.IsZero() {
		annot.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO annotations (id, page_url, page_title, body, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			body = excluded.body,
			comment = excluded.comment
	`, annot.ID, annot.PageURL, annot.PageTitle, annot.Body, annot.Comment, annot.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving annotation: %w", err)
	}

	for _, tag := range annot.Tags {
		_, err := s.store.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO annotation_tags (annotation_id, tag) VALUES (?, ?)",
			annot.ID, tag)
		if err != nil {
			return fmt.Errorf("saving annotation tag: %w", err)
		}
	}
	return nil
}

// Search returns annotation-level matches, newest first.
func (s *annotationStore) Search(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.AnnotationResult, error) {
	results, err := s.match(ctx, terms, q)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].CreatedAt.After(results[b].CreatedAt)
	})

	if q.Skip > 0 {
		if q.Skip >= len(results) {
			return []domain.AnnotationResult{}, nil
		}
		results = results[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(results) {
		results = results[:q.Limit]
	}
	return results, nil
}

// SearchGrouped runs the same search but synthesises one page-level
// result per parent page, with the matching annotations attached.
func (s *annotationStore) SearchGrouped(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	matches, err := s.match(ctx, terms, q)
	if err != nil {
		return nil, err
	}

	var order []string
	grouped := make(map[string]*domain.PageResult)
	for _, a := range matches {
		p, ok := grouped[a.PageURL]
		if !ok {
			order = append(order, a.PageURL)
			p = &domain.PageResult{
				URL:         a.PageURL,
				Title:       a.PageTitle,
				DisplayTime: a.CreatedAt,
			}
			grouped[a.PageURL] = p
		}
		p.Annotations = append(p.Annotations, a)
		p.Score = float64(len(p.Annotations))
		if a.CreatedAt.After(p.DisplayTime) {
			p.DisplayTime = a.CreatedAt
		}
	}

	results := make([]domain.PageResult, 0, len(order))
	for _, url := range order {
		results = append(results, *grouped[url])
	}

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

// match fetches term candidates from SQLite and applies the remaining
// filters in Go.
func (s *annotationStore) match(ctx context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.AnnotationResult, error) {
	query := "SELECT id, page_url, page_title, body, comment, created_at FROM annotations"
	var args []any
	if len(terms) > 0 {
		var likes []string
		for _, term := range terms {
			likes = append(likes, "lower(body || ' ' || comment) LIKE ?")
			args = append(args, "%"+strings.ToLower(string(term))+"%")
		}
		query += " WHERE " + strings.Join(likes, " OR ")
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var candidates []domain.AnnotationResult
	for rows.Next() {
		var a domain.AnnotationResult
		if err := rows.Scan(&a.ID, &a.PageURL, &a.PageTitle, &a.Body, &a.Comment, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		candidates = append(candidates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	results := make([]domain.AnnotationResult, 0, len(candidates))
	for _, a := range candidates {
		if len(q.Domains) > 0 && !matchesDomain(a.PageURL, q.Domains) {
			continue
		}
		if !q.StartTime.IsZero() && a.CreatedAt.Before(q.StartTime) {
			continue
		}
		if !q.EndTime.IsZero() && a.CreatedAt.After(q.EndTime) {
			continue
		}

		tags, err := s.annotationTags(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		a.Tags = tags
		if len(q.Tags) > 0 && !hasAnyTag(a.Tags, q.Tags) {
			continue
		}
		results = append(results, a)
	}
	return results, nil
}

func (s *annotationStore) annotationTags(ctx context.Context, id string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT tag FROM annotation_tags WHERE annotation_id = ? ORDER BY tag", id)
	if err != nil {
		return nil, fmt.Errorf("fetching annotation tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning annotation tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// ListForPage returns every annotation belonging to a page, oldest first.
func (s *annotationStore) ListForPage(ctx context.Context, url string) ([]domain.AnnotationResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, page_url, page_title, body, comment, created_at
		FROM annotations WHERE page_url = ? ORDER BY created_at
	`, url)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}
	defer rows.Close()

	var out []domain.AnnotationResult
	for rows.Next() {
		var a domain.AnnotationResult
		if err := rows.Scan(&a.ID, &a.PageURL, &a.PageTitle, &a.Body, &a.Comment, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		tags, err := s.annotationTags(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		a.Tags = tags
		out = append(out, a)
	}
	return out, rows.Err()
}
