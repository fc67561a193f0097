package drivemirror

import (
	"strings"

	"google.golang.org/api/drive/v3"
)

const (
	mimeTypeGoogleAppFolder = "application/vnd.google-apps.folder"
	mimeTypePrefixGoogleApp = "application/vnd.google-apps."
)

// FileID is an opaque identifier assigned by the remote storage provider.
type FileID string

// RootID is the alias of the top-level folder of the authenticated user's drive.
const RootID FileID = "root"

// Item describes a remote file or folder.
type Item struct {
	ID       FileID
	Title    string
	IsFolder bool
	ParentID FileID
	Trashed  bool
	Size     int64
	Mime     string
}

// IsAppFile reports whether the item is a google-apps document, which has no downloadable content.
func (i Item) IsAppFile() bool {
	return strings.HasPrefix(i.Mime, mimeTypePrefixGoogleApp)
}

// ListFilter selects children by trash state.
type ListFilter int

const (
	ListActive ListFilter = iota
	ListTrashed
	ListAll
)

func (f ListFilter) String() string {
	switch f {
	case ListActive:
		return "active"
	case ListTrashed:
		return "trashed"
	case ListAll:
		return "all"
	default:
		return "unknown"
	}
}

// Match reports whether an item with the given trash state passes the filter.
func (f ListFilter) Match(trashed bool) bool {
	switch f {
	case ListActive:
		return !trashed
	case ListTrashed:
		return trashed
	default:
		return true
	}
}

func newItem(f *drive.File) Item {
	var parentID FileID
	if len(f.Parents) > 0 {
		parentID = FileID(f.Parents[0])
	}
	return Item{
		ID:       FileID(f.Id),
		Title:    f.Name,
		IsFolder: f.MimeType == mimeTypeGoogleAppFolder,
		ParentID: parentID,
		Trashed:  f.Trashed,
		Size:     f.Size,
		Mime:     f.MimeType,
	}
}

// FirstByTitle returns the first item titled title, optionally restricted to folders.
// Providers do not keep sibling titles unique, so later matches are ignored.
func FirstByTitle(items []Item, title string, foldersOnly bool) (Item, bool) {
	for _, item := range items {
		if item.Title != title {
			continue
		}
		if foldersOnly && !item.IsFolder {
			continue
		}
		return item, true
	}
	return Item{}, false
}
