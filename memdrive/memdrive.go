// Package memdrive provides an in-memory drivemirror.Provider.
//
// It follows the trash semantics of Google Drive: an item below a trashed folder is reported as
// trashed even if it was never trashed itself. Sibling titles are not required to be unique.
package memdrive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Jumpaku/go-drivemirror"
	derrors "github.com/Jumpaku/go-drivemirror/errors"
)

// RootTitle is the title of the root folder.
const RootTitle = "My Drive"

type entry struct {
	id       drivemirror.FileID
	title    string
	isFolder bool
	parent   drivemirror.FileID
	trashed  bool
	content  []byte
}

// Drive is an in-memory provider. It is safe for concurrent use.
type Drive struct {
	mu      sync.Mutex
	nextID  int
	entries map[drivemirror.FileID]*entry
	order   []drivemirror.FileID
	calls   map[string]int
	trashes map[drivemirror.FileID]int
	faults  map[fault]error
}

type fault struct {
	op string
	id drivemirror.FileID
}

var _ drivemirror.Provider = (*Drive)(nil)

// New creates an empty drive holding only the root folder.
func New() *Drive {
	d := &Drive{
		entries: map[drivemirror.FileID]*entry{},
		calls:   map[string]int{},
		trashes: map[drivemirror.FileID]int{},
		faults:  map[fault]error{},
	}
	d.entries[drivemirror.RootID] = &entry{id: drivemirror.RootID, title: RootTitle, isFolder: true}
	return d
}

// Fail makes every later call of op on id return err. op is the Provider method name.
func (d *Drive) Fail(op string, id drivemirror.FileID, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[fault{op: op, id: id}] = err
}

// Calls returns how many times the Provider method op was called.
func (d *Drive) Calls(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

// TrashCount returns how many times Trash was called on id.
func (d *Drive) TrashCount(id drivemirror.FileID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.trashes[id]
}

// Items returns every item except the root in creation order.
func (d *Drive) Items() []drivemirror.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := []drivemirror.Item{}
	for _, id := range d.order {
		items = append(items, d.itemOf(d.entries[id]))
	}
	return items
}

// Content returns the stored bytes of the file id.
func (d *Drive) Content(id drivemirror.FileID) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[id]
	if !ok || e.isFolder {
		return nil, false
	}
	return bytes.Clone(e.content), true
}

func (d *Drive) Stat(ctx context.Context, id drivemirror.FileID) (drivemirror.Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.begin(ctx, "Stat", id)
	if err != nil {
		return drivemirror.Item{}, err
	}
	return d.itemOf(e), nil
}

func (d *Drive) Create(ctx context.Context, name string, parentID drivemirror.FileID, isFolder bool) (drivemirror.Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent, err := d.begin(ctx, "Create", parentID)
	if err != nil {
		return drivemirror.Item{}, err
	}
	if !parent.isFolder {
		return drivemirror.Item{}, fmt.Errorf("parent '%s': %w", parentID, derrors.ErrNotFolder)
	}
	d.nextID++
	e := &entry{
		id:       drivemirror.FileID(fmt.Sprintf("id-%d", d.nextID)),
		title:    name,
		isFolder: isFolder,
		parent:   parent.id,
	}
	d.entries[e.id] = e
	d.order = append(d.order, e.id)
	return d.itemOf(e), nil
}

func (d *Drive) ListChildren(ctx context.Context, parentID drivemirror.FileID, filter drivemirror.ListFilter) ([]drivemirror.Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent, err := d.begin(ctx, "ListChildren", parentID)
	if err != nil {
		return nil, err
	}
	children := []drivemirror.Item{}
	for _, id := range d.order {
		e := d.entries[id]
		if e.parent != parent.id || !filter.Match(d.isTrashed(e)) {
			continue
		}
		children = append(children, d.itemOf(e))
	}
	return children, nil
}

func (d *Drive) Search(ctx context.Context, title string) ([]drivemirror.Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.begin(ctx, "Search", drivemirror.RootID); err != nil {
		return nil, err
	}
	results := []drivemirror.Item{}
	for _, id := range d.order {
		e := d.entries[id]
		if e.title == title && !d.isTrashed(e) {
			results = append(results, d.itemOf(e))
		}
	}
	return results, nil
}

func (d *Drive) Upload(ctx context.Context, id drivemirror.FileID, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return derrors.NewIOError("failed to read upload content", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.begin(ctx, "Upload", id)
	if err != nil {
		return err
	}
	if e.isFolder {
		return fmt.Errorf("cannot upload to folder '%s': %w", id, derrors.ErrNotReadable)
	}
	e.content = data
	return nil
}

func (d *Drive) Download(ctx context.Context, id drivemirror.FileID, w io.Writer) error {
	d.mu.Lock()
	e, err := d.begin(ctx, "Download", id)
	var data []byte
	if err == nil {
		data = bytes.Clone(e.content)
		if e.isFolder {
			err = fmt.Errorf("cannot download folder '%s': %w", id, derrors.ErrNotReadable)
		}
	}
	d.mu.Unlock()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return derrors.NewIOError("failed to write download content", err)
	}
	return nil
}

func (d *Drive) Trash(ctx context.Context, id drivemirror.FileID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.begin(ctx, "Trash", id)
	if err != nil {
		return err
	}
	d.trashes[id]++
	e.trashed = true
	return nil
}

func (d *Drive) Untrash(ctx context.Context, id drivemirror.FileID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.begin(ctx, "Untrash", id)
	if err != nil {
		return err
	}
	e.trashed = false
	return nil
}

func (d *Drive) SetParent(ctx context.Context, id, newParentID drivemirror.FileID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.begin(ctx, "SetParent", id)
	if err != nil {
		return err
	}
	parent, found := d.entries[newParentID]
	if !found {
		return fmt.Errorf("parent '%s': %w", newParentID, derrors.ErrNotFound)
	}
	if !parent.isFolder {
		return fmt.Errorf("parent '%s': %w", newParentID, derrors.ErrNotFolder)
	}
	for p := parent; p != nil; p = d.entries[p.parent] {
		if p.id == e.id {
			return fmt.Errorf("cannot move '%s' below itself: %w", id, derrors.ErrInvalidArgument)
		}
		if p.parent == "" {
			break
		}
	}
	e.parent = parent.id
	return nil
}

// begin records the call, applies injected faults and resolves id. d.mu must be held.
func (d *Drive) begin(ctx context.Context, op string, id drivemirror.FileID) (*entry, error) {
	d.calls[op]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := d.faults[fault{op: op, id: id}]; ok {
		return nil, err
	}
	e, ok := d.entries[id]
	if !ok {
		return nil, fmt.Errorf("file '%s': %w", id, derrors.ErrNotFound)
	}
	return e, nil
}

func (d *Drive) isTrashed(e *entry) bool {
	for ; e != nil; e = d.entries[e.parent] {
		if e.trashed {
			return true
		}
		if e.parent == "" {
			break
		}
	}
	return false
}

func (d *Drive) itemOf(e *entry) drivemirror.Item {
	mime := "application/octet-stream"
	if e.isFolder {
		mime = "application/vnd.google-apps.folder"
	}
	return drivemirror.Item{
		ID:       e.id,
		Title:    e.title,
		IsFolder: e.isFolder,
		ParentID: e.parent,
		Trashed:  d.isTrashed(e),
		Size:     int64(len(e.content)),
		Mime:     mime,
	}
}
