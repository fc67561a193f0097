package drivemirror_test

import (
	"context"
	"testing"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/Jumpaku/go-drivemirror/memdrive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	folder, fileA, subB, fileC drivemirror.FileID
}

// buildFixture creates folder{fileA, subfolderB{fileC}} under the drive root.
func buildFixture(t *testing.T, d *memdrive.Drive) fixture {
	t.Helper()
	ctx := context.Background()
	create := func(name string, parent drivemirror.FileID, isFolder bool) drivemirror.FileID {
		item, err := d.Create(ctx, name, parent, isFolder)
		require.NoError(t, err)
		return item.ID
	}
	var f fixture
	f.folder = create("folder", drivemirror.RootID, true)
	f.fileA = create("fileA", f.folder, false)
	f.subB = create("subfolderB", f.folder, true)
	f.fileC = create("fileC", f.subB, false)
	return f
}

func nodeIDs(nodes []*drivemirror.Node) []drivemirror.FileID {
	ids := []drivemirror.FileID{}
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestMaterialize_Counts(t *testing.T) {
	d := memdrive.New()
	f := buildFixture(t, d)

	tree, err := drivemirror.Materialize(context.Background(), d, f.folder, drivemirror.ListActive)
	require.NoError(t, err)

	assert.Len(t, tree.Descendants(), 3)
	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, []drivemirror.FileID{f.subB}, nodeIDs(tree.Folders()))
	assert.Equal(t, []drivemirror.FileID{f.fileA, f.fileC}, nodeIDs(tree.Leaves()))
	assert.Equal(t, []drivemirror.FileID{f.fileA, f.fileC}, nodeIDs(tree.Files()))
}

func TestMaterialize_Structure(t *testing.T) {
	d := memdrive.New()
	f := buildFixture(t, d)

	tree, err := drivemirror.Materialize(context.Background(), d, f.folder, drivemirror.ListActive)
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, f.folder, root.ID)
	assert.Equal(t, "folder", root.Title)
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, []drivemirror.FileID{f.fileA, f.subB}, root.Children)

	c, found := tree.Node(f.fileC)
	require.True(t, found)
	assert.Equal(t, f.subB, c.Parent)
	assert.Equal(t, 2, c.Depth)
	assert.True(t, c.IsLeaf())

	_, found = tree.Node("missing")
	assert.False(t, found)

	cases := []struct {
		id   drivemirror.FileID
		want string
	}{
		{f.folder, "."},
		{f.fileA, "fileA"},
		{f.subB, "subfolderB"},
		{f.fileC, "subfolderB/fileC"},
		{"missing", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tree.Path(c.id), c.id)
	}
}

func TestMaterialize_BreadthFirstOrder(t *testing.T) {
	d := memdrive.New()
	ctx := context.Background()
	create := func(name string, parent drivemirror.FileID, isFolder bool) drivemirror.FileID {
		item, err := d.Create(ctx, name, parent, isFolder)
		require.NoError(t, err)
		return item.ID
	}
	root := create("r", drivemirror.RootID, true)
	a := create("a", root, true)
	b := create("b", root, true)
	a1 := create("a1", a, false)
	b1 := create("b1", b, true)
	a2 := create("a2", a, false)
	b11 := create("b11", b1, false)

	tree, err := drivemirror.Materialize(ctx, d, root, drivemirror.ListActive)
	require.NoError(t, err)

	visited := []drivemirror.FileID{}
	require.NoError(t, tree.Walk(func(n *drivemirror.Node) error {
		visited = append(visited, n.ID)
		return nil
	}))
	assert.Equal(t, []drivemirror.FileID{root, a, b, a1, a2, b1, b11}, visited)
}

func TestMaterialize_File(t *testing.T) {
	d := memdrive.New()
	f := buildFixture(t, d)

	tree, err := drivemirror.Materialize(context.Background(), d, f.fileA, drivemirror.ListActive)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
	assert.Empty(t, tree.Descendants())
	assert.Zero(t, d.Calls("ListChildren"))
}

func TestMaterialize_Filter(t *testing.T) {
	d := memdrive.New()
	ctx := context.Background()
	f := buildFixture(t, d)
	require.NoError(t, d.Trash(ctx, f.subB))

	active, err := drivemirror.Materialize(ctx, d, f.folder, drivemirror.ListActive)
	require.NoError(t, err)
	assert.Equal(t, []drivemirror.FileID{f.fileA}, nodeIDs(active.Descendants()))

	trashed, err := drivemirror.Materialize(ctx, d, f.folder, drivemirror.ListTrashed)
	require.NoError(t, err)
	assert.Equal(t, []drivemirror.FileID{f.subB, f.fileC}, nodeIDs(trashed.Descendants()))

	all, err := drivemirror.Materialize(ctx, d, f.folder, drivemirror.ListAll)
	require.NoError(t, err)
	assert.Len(t, all.Descendants(), 3)
}

func TestMaterialize_ListingFailureDiscardsTree(t *testing.T) {
	d := memdrive.New()
	f := buildFixture(t, d)
	d.Fail("ListChildren", f.subB, drivemirror.ErrAPIError)

	tree, err := drivemirror.Materialize(context.Background(), d, f.folder, drivemirror.ListActive)
	assert.ErrorIs(t, err, drivemirror.ErrAPIError)
	assert.Nil(t, tree)
}

func TestMaterialize_MissingRoot(t *testing.T) {
	d := memdrive.New()
	_, err := drivemirror.Materialize(context.Background(), d, "nope", drivemirror.ListActive)
	assert.ErrorIs(t, err, drivemirror.ErrNotFound)
}

func TestMaterialize_Cancelled(t *testing.T) {
	d := memdrive.New()
	f := buildFixture(t, d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := drivemirror.Materialize(ctx, d, f.folder, drivemirror.ListActive)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionTree(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	require.NoError(t, d.Trash(ctx, f.fileC))

	active, err := s.Tree(ctx, f.folder, drivemirror.ListActive)
	require.NoError(t, err)
	assert.Equal(t, 3, active.Len())

	all, err := s.Tree(ctx, f.folder, drivemirror.ListAll)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Len())
}
