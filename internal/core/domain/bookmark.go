package domain

// BookmarkNode is the payload of a browser bookmark-tree notification.
// The node is otherwise opaque; only the URL matters to the index.
type BookmarkNode struct {
	// ID is the browser-assigned node identifier.
	ID string

	// Title is the bookmark title.
	Title string

	// URL is the bookmarked page URL. Empty for folder nodes.
	URL string
}

// IsFolder reports whether the node is a folder rather than a bookmark.
func (n BookmarkNode) IsFolder() bool {
	return n.URL == ""
}

// Tab identifies a browser tab.
type Tab struct {
	// ID is the browser-assigned tab identifier.
	ID int

	// URL is the page currently loaded in the tab.
	URL string
}
