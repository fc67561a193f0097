package drivemirror

import (
	"context"
	"io"
)

// Provider is the remote storage service the session operates on.
// Each method issues one blocking call against the remote service.
type Provider interface {
	// Stat returns the item with the given id, or an error wrapping ErrNotFound.
	Stat(ctx context.Context, id FileID) (Item, error)
	// Create creates an empty file or a folder named name under parentID.
	Create(ctx context.Context, name string, parentID FileID, isFolder bool) (Item, error)
	// ListChildren lists the direct children of parentID that pass filter, in provider order.
	ListChildren(ctx context.Context, parentID FileID, filter ListFilter) ([]Item, error)
	// Search lists every non-trashed item titled title regardless of its parent.
	Search(ctx context.Context, title string) ([]Item, error)
	// Upload replaces the content of the file id with the bytes read from r.
	Upload(ctx context.Context, id FileID, r io.Reader) error
	// Download writes the content of the file id to w.
	Download(ctx context.Context, id FileID, w io.Writer) error
	// Trash moves id to the trash. Trashing a trashed item is a no-op.
	Trash(ctx context.Context, id FileID) error
	// Untrash restores id from the trash. Untrashing an active item is a no-op.
	Untrash(ctx context.Context, id FileID) error
	// SetParent replaces all parents of id with newParentID.
	SetParent(ctx context.Context, id, newParentID FileID) error
}
