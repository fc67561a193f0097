package drivemirror

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
)

// remoteFS serves a materialized Tree as a read-only fs.FS.
// Paths are built from titles. When siblings share a title, only the first one is visible.
type remoteFS struct {
	ctx      context.Context
	provider Provider
	tree     *Tree
	paths    map[string]FileID
	visible  map[FileID]bool
}

var _ fs.FS = (*remoteFS)(nil)

// FS materializes the active subtree of folderID and returns it as a read-only fs.FS.
// The listing is a snapshot; file contents are downloaded with ctx when a file is opened.
// Items whose titles are not valid path elements are hidden together with their descendants.
func (s *Session) FS(ctx context.Context, folderID FileID) (fs.FS, error) {
	tree, err := Materialize(ctx, s.provider, folderID, ListActive)
	if err != nil {
		return nil, err
	}
	if !tree.Root().IsFolder {
		return nil, fmt.Errorf("'%s' is a file: %w", folderID, derrors.ErrNotFolder)
	}
	return newRemoteFS(ctx, s.provider, tree), nil
}

func newRemoteFS(ctx context.Context, p Provider, tree *Tree) *remoteFS {
	fsys := &remoteFS{
		ctx:      ctx,
		provider: p,
		tree:     tree,
		paths:    map[string]FileID{".": tree.root},
		visible:  map[FileID]bool{tree.root: true},
	}
	dirs := map[FileID]string{tree.root: "."}
	_ = tree.Walk(func(n *Node) error {
		parentDir, ok := dirs[n.Parent]
		if n.ID == tree.root || !ok || validateName(n.Title) != nil {
			return nil
		}
		name := path.Join(parentDir, n.Title)
		if _, taken := fsys.paths[name]; taken {
			return nil
		}
		fsys.paths[name] = n.ID
		fsys.visible[n.ID] = true
		if n.IsFolder {
			dirs[n.ID] = name
		}
		return nil
	})
	return fsys
}

// Open opens the named file or directory. Opening a file downloads its whole content.
func (fsys *remoteFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	id, ok := fsys.paths[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	node, _ := fsys.tree.Node(id)

	if node.IsFolder {
		entries := []fs.DirEntry{}
		for _, childID := range node.Children {
			if fsys.visible[childID] {
				child, _ := fsys.tree.Node(childID)
				entries = append(entries, &remoteDirEntry{node: child})
			}
		}
		return &remoteDir{node: node, entries: entries}, nil
	}

	var buf bytes.Buffer
	if err := fsys.provider.Download(fsys.ctx, id, &buf); err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &remoteFile{node: node, content: bytes.NewReader(buf.Bytes())}, nil
}
