package services

import "github.com/cori/Memex/internal/core/domain"

// MergePageResults combines per-source result lists into a single
// deduplicated collection keyed by page URL.
//
// Accumulation walks the input lists in order. The first sighting of a
// URL fixes its position in the output; later sightings replace the
// page metadata (later lists win on conflict) and concatenate their
// annotations onto the accumulated list. Callers therefore order inputs
// so the most authoritative source comes last.
//
// After accumulation each page's annotation list is filtered: an
// annotation survives only if its parent page still carries annotations
// of its own. A page seen only through the page search does not vouch
// for annotations claiming it as a parent. Dropping a page's last
// annotation can orphan annotations that named it as parent, so the
// filter repeats until nothing changes; the output is then a fixed
// point of the merge and re-merging it yields the same collection.
func MergePageResults(lists [][]domain.PageResult) []domain.PageResult {
	type acc struct {
		page   domain.PageResult
		annots []domain.AnnotationResult
	}

	var order []string
	byURL := make(map[string]*acc)

	for _, list := range lists {
		for _, p := range list {
			a, ok := byURL[p.URL]
			if !ok {
				order = append(order, p.URL)
				byURL[p.URL] = &acc{
					page:   p,
					annots: append([]domain.AnnotationResult(nil), p.Annotations...),
				}
				continue
			}
			a.annots = append(a.annots, p.Annotations...)
			a.page = p
		}
	}

	for {
		annotated := make(map[string]bool, len(byURL))
		for url, a := range byURL {
			if len(a.annots) > 0 {
				annotated[url] = true
			}
		}

		changed := false
		for _, a := range byURL {
			kept := make([]domain.AnnotationResult, 0, len(a.annots))
			for _, an := range a.annots {
				if annotated[an.PageURL] {
					kept = append(kept, an)
				}
			}
			if len(kept) != len(a.annots) {
				changed = true
			}
			a.annots = kept
		}
		if !changed {
			break
		}
	}

	out := make([]domain.PageResult, 0, len(order))
	for _, url := range order {
		a := byURL[url]
		p := a.page
		p.Annotations = a.annots
		out = append(out, p)
	}
	return out
}
