package drivemirror

import (
	"io"
	"io/fs"
	"sync"
)

// remoteDir implements fs.ReadDirFile for a folder of a materialized Tree.
// ReadDir is protected by a mutex for concurrent use.
type remoteDir struct {
	node    *Node
	entries []fs.DirEntry
	offset  int
	mu      sync.Mutex
}

var _ fs.ReadDirFile = (*remoteDir)(nil)

func (d *remoteDir) Stat() (fs.FileInfo, error) {
	return &remoteFileInfo{node: d.node}, nil
}

// Read returns an error because directories cannot be read.
func (d *remoteDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.node.Title, Err: fs.ErrInvalid}
}

func (d *remoteDir) Close() error {
	return nil
}

func (d *remoteDir) ReadDir(n int) ([]fs.DirEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n <= 0 {
		entries := d.entries[d.offset:]
		d.offset = len(d.entries)
		return entries, nil
	}

	if d.offset >= len(d.entries) {
		return nil, io.EOF
	}

	end := min(d.offset+n, len(d.entries))
	entries := d.entries[d.offset:end]
	d.offset = end

	if d.offset >= len(d.entries) {
		return entries, io.EOF
	}
	return entries, nil
}

// remoteDirEntry implements fs.DirEntry for a node of a materialized Tree.
type remoteDirEntry struct {
	node *Node
}

var _ fs.DirEntry = (*remoteDirEntry)(nil)

func (e *remoteDirEntry) Name() string {
	return e.node.Title
}

func (e *remoteDirEntry) IsDir() bool {
	return e.node.IsFolder
}

func (e *remoteDirEntry) Type() fs.FileMode {
	if e.IsDir() {
		return fs.ModeDir
	}
	return 0
}

func (e *remoteDirEntry) Info() (fs.FileInfo, error) {
	return &remoteFileInfo{node: e.node}, nil
}
