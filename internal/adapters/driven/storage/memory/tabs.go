package memory

import (
	"context"
	"sync"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
)

// Ensure TabTracker implements the interface.
var _ driven.TabTracker = (*TabTracker)(nil)

// TabTracker is an in-memory implementation of driven.TabTracker.
// The browser integration pushes the active tab in; the bookmark
// handler reads it out.
type TabTracker struct {
	mu  sync.RWMutex
	tab *domain.Tab
}

// NewTabTracker creates a tab tracker with no active tab.
func NewTabTracker() *TabTracker {
	return &TabTracker{}
}

// SetActive records the currently active tab. Pass nil when no tab is
// focused.
func (t *TabTracker) SetActive(tab *domain.Tab) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tab = tab
}

// ActiveTab returns the active tab, or nil when no tab is focused.
func (t *TabTracker) ActiveTab(_ context.Context) (*domain.Tab, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.tab == nil {
		return nil, nil
	}
	tab := *t.tab
	return &tab, nil
}
