package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu     sync.RWMutex
	byPage map[string][]domain.AnnotationResult
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		byPage: make(map[string][]domain.AnnotationResult),
	}
}

// Save stores an annotation. An empty ID is assigned on insert.
func (s *AnnotationStore) Save(_ context.Context, annot *domain.AnnotationResult) error {
	if annot.PageURL == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if annot.ID == "" {
		annot.ID = uuid.NewString()
	}
	if annot.CreatedAt.IsZero() {
		annot.CreatedAt = time.Now()
	}
	s.byPage[annot.PageURL] = append(s.byPage[annot.PageURL], *annot)
	return nil
}

// Search returns annotation-level matches for the given terms, newest
// first, constrained by the query's filters and pagination bounds.
func (s *AnnotationStore) Search(_ context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.AnnotationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.match(terms, q)
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
func (s *AnnotationStore) SearchGrouped(_ context.Context, terms []domain.Term, q domain.SearchQuery) ([]domain.PageResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.match(terms, q)

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
		// Score a page stub by its strongest annotation count; newest
		// annotation sets the display time.
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

// match is the shared filter walk. Callers hold the read lock.
func (s *AnnotationStore) match(terms []domain.Term, q domain.SearchQuery) []domain.AnnotationResult {
	var results []domain.AnnotationResult
	for url, annots := range s.byPage {
		if len(q.Domains) > 0 && !matchesDomain(url, q.Domains) {
			continue
		}
		for _, a := range annots {
			haystack := strings.ToLower(a.Body + " " + a.Comment)
			matched := len(terms) == 0
			for _, term := range terms {
				if strings.Contains(haystack, string(term)) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if len(q.Tags) > 0 && !hasAnyTag(a.Tags, q.Tags) {
				continue
			}
			if !q.StartTime.IsZero() && a.CreatedAt.Before(q.StartTime) {
				continue
			}
			if !q.EndTime.IsZero() && a.CreatedAt.After(q.EndTime) {
				continue
			}
			results = append(results, a)
		}
	}
	return results
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
func (s *AnnotationStore) ListForPage(_ context.Context, url string) ([]domain.AnnotationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	annots := s.byPage[url]
	out := make([]domain.AnnotationResult, len(annots))
	copy(out, annots)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}
