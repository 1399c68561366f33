package driving

import (
	"context"

	"github.com/cori/Memex/internal/core/domain"
)

// BookmarkEvents is the narrow handler surface registered once against a
// browser bookmark notification source. Handlers are fire-and-forget
// reactions; the notification source never inspects their outcome.
type BookmarkEvents interface {
	// OnCreated reacts to a bookmark-creation notification. Folder
	// nodes are ignored. When the node's URL matches the active tab,
	// the bookmark is correlated with that tab's identifier.
	OnCreated(ctx context.Context, node domain.BookmarkNode) error

	// OnRemoved reacts to a bookmark-removal notification. Folder
	// nodes are ignored. Index failures are logged and swallowed:
	// removal is best-effort and must never disrupt the browser's own
	// bookmark flow.
	OnRemoved(ctx context.Context, node domain.BookmarkNode) error
}
