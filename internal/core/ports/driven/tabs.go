package driven

import (
	"context"

	"github.com/cori/Memex/internal/core/domain"
)

// TabTracker reports the browser's currently active tab.
type TabTracker interface {
	// ActiveTab returns the active tab, or nil when no tab is focused.
	ActiveTab(ctx context.Context) (*domain.Tab, error)
}
