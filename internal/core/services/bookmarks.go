package services

import (
	"context"
	"fmt"

	"github.com/cori/Memex/internal/core/domain"
	"github.com/cori/Memex/internal/core/ports/driven"
	"github.com/cori/Memex/internal/core/ports/driving"
	"github.com/cori/Memex/internal/logger"
)

// Ensure BookmarkHandler implements the interface.
var _ driving.BookmarkEvents = (*BookmarkHandler)(nil)

// BookmarkHandler reacts to browser bookmark-tree notifications by
// mutating index state. It is registered once at startup against the
// notification source and runs independently of in-flight searches.
type BookmarkHandler struct {
	index driven.PageIndex
	tabs  driven.TabTracker
}

// NewBookmarkHandler creates a new bookmark event handler.
// The tab tracker is optional; without it bookmarks are never
// correlated with a tab.
func NewBookmarkHandler(index driven.PageIndex, tabs driven.TabTracker) *BookmarkHandler {
	return &BookmarkHandler{
		index: index,
		tabs:  tabs,
	}
}

// OnCreated handles a bookmark-creation notification. Folder nodes are
// a defined no-op. When the node's URL matches the currently active
// tab, the add-bookmark call carries that tab's identifier.
func (h *BookmarkHandler) OnCreated(ctx context.Context, node domain.BookmarkNode) error {
	if node.IsFolder() {
		logger.Debug("Bookmark created for folder node %s, ignoring", node.ID)
		return nil
	}

	var tabID *int
	if h.tabs != nil {
		tab, err := h.tabs.ActiveTab(ctx)
		if err != nil {
			logger.Warn("Active tab lookup failed: %v", err)
		} else if tab != nil && tab.URL == node.URL {
			id := tab.ID
			tabID = &id
			logger.Debug("Bookmark %s matches active tab %d", node.URL, tab.ID)
		}
	}

	if err := h.index.AddBookmark(ctx, node.URL, tabID); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// OnRemoved handles a bookmark-removal notification. Folder nodes are a
// defined no-op. Index failures are logged and swallowed so they never
// propagate into the browser's bookmark flow.
func (h *BookmarkHandler) OnRemoved(ctx context.Context, node domain.BookmarkNode) error {
	if node.IsFolder() {
		logger.Debug("Bookmark removed for folder node %s, ignoring", node.ID)
		return nil
	}

	if err := h.index.DelBookmark(ctx, node.URL); err != nil {
		logger.Warn("Bookmark removal for %s failed: %v", node.URL, err)
	}
	return nil
}
