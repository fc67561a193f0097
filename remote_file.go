package drivemirror

import (
	"bytes"
	"io/fs"
	"time"
)

// remoteFile implements fs.File over content downloaded when the file was opened.
type remoteFile struct {
	node    *Node
	content *bytes.Reader
}

var _ fs.File = (*remoteFile)(nil)

func (f *remoteFile) Stat() (fs.FileInfo, error) {
	return &remoteFileInfo{node: f.node}, nil
}

func (f *remoteFile) Read(b []byte) (int, error) {
	return f.content.Read(b)
}

func (f *remoteFile) Close() error {
	return nil
}

// remoteFileInfo implements fs.FileInfo for a node of a materialized Tree.
// Modification times are not tracked, so ModTime is always the zero time.
type remoteFileInfo struct {
	node *Node
}

var _ fs.FileInfo = (*remoteFileInfo)(nil)

func (fi *remoteFileInfo) Name() string {
	return fi.node.Title
}

func (fi *remoteFileInfo) Size() int64 {
	return fi.node.Size
}

func (fi *remoteFileInfo) Mode() fs.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | 0444
	}
	return 0444
}

func (fi *remoteFileInfo) ModTime() time.Time {
	return time.Time{}
}

func (fi *remoteFileInfo) IsDir() bool {
	return fi.node.IsFolder
}

// Sys returns the underlying *Node.
func (fi *remoteFileInfo) Sys() any {
	return fi.node
}
