package drivemirror_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(t *testing.T, p drivemirror.Provider, id drivemirror.FileID, content string) {
	t.Helper()
	require.NoError(t, p.Upload(context.Background(), id, bytes.NewBufferString(content)))
}

func TestDownloadFolder(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	upload(t, d, f.fileA, "A")
	upload(t, d, f.fileC, "C")
	_, err := d.Create(ctx, "empty", f.folder, true)
	require.NoError(t, err)

	dir := t.TempDir()
	files, err := s.DownloadFolder(ctx, f.folder, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, files)

	a, err := os.ReadFile(filepath.Join(dir, "fileA"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(a))
	c, err := os.ReadFile(filepath.Join(dir, "subfolderB", "fileC"))
	require.NoError(t, err)
	assert.Equal(t, "C", string(c))
	info, err := os.Stat(filepath.Join(dir, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDownloadFolder_NotAFolder(t *testing.T) {
	s, d := newTestSession(t)
	f := buildFixture(t, d)

	_, err := s.DownloadFolder(context.Background(), f.fileA, t.TempDir())
	assert.ErrorIs(t, err, drivemirror.ErrNotFolder)
}

func TestDownloadFolder_RejectsUnsafeTitles(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	_, err := d.Create(ctx, "..", f.folder, false)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = s.DownloadFolder(ctx, f.folder, dir)
	assert.ErrorIs(t, err, drivemirror.ErrInvalidPath)
}

func TestDownloadFolder_KeepsFirstOfSameTitledSiblings(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	upload(t, d, f.fileA, "A")
	upload(t, d, f.fileC, "C")
	first, err := d.Create(ctx, "dup", f.folder, false)
	require.NoError(t, err)
	upload(t, d, first.ID, "first")
	second, err := d.Create(ctx, "dup", f.folder, false)
	require.NoError(t, err)
	upload(t, d, second.ID, "second")
	shadowed, err := d.Create(ctx, "subfolderB", f.folder, true)
	require.NoError(t, err)
	hidden, err := d.Create(ctx, "hidden", shadowed.ID, false)
	require.NoError(t, err)
	upload(t, d, hidden.ID, "hidden")
	mixed, err := d.Create(ctx, "fileA", f.folder, true)
	require.NoError(t, err)
	_, err = d.Create(ctx, "inner", mixed.ID, false)
	require.NoError(t, err)

	dir := t.TempDir()
	files, err := s.DownloadFolder(ctx, f.folder, dir)
	require.NoError(t, err)

	onDisk := 0
	err = filepath.WalkDir(dir, func(_ string, e fs.DirEntry, err error) error {
		if err == nil && !e.IsDir() {
			onDisk++
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 3, files)
	assert.Equal(t, onDisk, files)

	dup, err := os.ReadFile(filepath.Join(dir, "dup"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(dup))
	a, err := os.ReadFile(filepath.Join(dir, "fileA"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(a))
	_, err = os.Stat(filepath.Join(dir, "subfolderB", "hidden"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDeleteFolder_TrashesEachNodeOnce(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	other, err := d.Create(ctx, "other", drivemirror.RootID, false)
	require.NoError(t, err)

	count, err := s.DeleteFolder(ctx, f.folder)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	for _, id := range []drivemirror.FileID{f.folder, f.fileA, f.subB, f.fileC} {
		assert.Equal(t, 1, d.TrashCount(id), id)
		item, err := d.Stat(ctx, id)
		require.NoError(t, err)
		assert.True(t, item.Trashed, id)
	}
	assert.Zero(t, d.TrashCount(other.ID))
	assert.Equal(t, []string{"other"}, titles(childrenOf(t, d, drivemirror.RootID)))
}

func TestDeleteFolderFrom_ReparentsBeforeTrashing(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	bin, err := d.Create(ctx, "bin", drivemirror.RootID, true)
	require.NoError(t, err)

	count, err := s.DeleteFolderFrom(ctx, f.folder, bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	for _, id := range []drivemirror.FileID{f.folder, f.fileA, f.subB, f.fileC} {
		item, err := d.Stat(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bin.ID, item.ParentID, id)
		assert.True(t, item.Trashed, id)
		assert.Equal(t, 1, d.TrashCount(id), id)
	}
	assert.Equal(t, 4, d.Calls("SetParent"))

	_, err = s.DeleteFolderFrom(ctx, f.folder, "")
	assert.ErrorIs(t, err, drivemirror.ErrInvalidArgument)
}

func TestRestoreFolder(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)

	_, err := s.DeleteFolder(ctx, f.folder)
	require.NoError(t, err)

	count, err := s.RestoreFolder(ctx, f.folder)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	for _, id := range []drivemirror.FileID{f.folder, f.fileA, f.subB, f.fileC} {
		item, err := d.Stat(ctx, id)
		require.NoError(t, err)
		assert.False(t, item.Trashed, id)
	}

	again, err := s.RestoreFolder(ctx, f.folder)
	require.NoError(t, err)
	assert.Equal(t, count, again)

	tree, err := s.Tree(ctx, f.folder, drivemirror.ListActive)
	require.NoError(t, err)
	assert.Len(t, tree.Descendants(), 3)
}

func TestRestoreFolder_OnlyRootTrashed(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	require.NoError(t, s.DeleteFile(ctx, f.folder))

	item, err := d.Stat(ctx, f.fileC)
	require.NoError(t, err)
	require.True(t, item.Trashed)

	count, err := s.RestoreFolder(ctx, f.folder)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	item, err = d.Stat(ctx, f.fileC)
	require.NoError(t, err)
	assert.False(t, item.Trashed)
}

func TestRestoreFolder_RestoresIndividuallyTrashedDescendants(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	require.NoError(t, s.DeleteFile(ctx, f.fileA))
	require.NoError(t, s.DeleteFile(ctx, f.folder))

	_, err := s.RestoreFolder(ctx, f.folder)
	require.NoError(t, err)
	item, err := d.Stat(ctx, f.fileA)
	require.NoError(t, err)
	assert.False(t, item.Trashed)
}

func TestDeleteFolder_AbortsOnTrashFailure(t *testing.T) {
	s, d := newTestSession(t)
	f := buildFixture(t, d)
	d.Fail("Trash", f.subB, drivemirror.ErrAPIError)

	count, err := s.DeleteFolder(context.Background(), f.folder)
	assert.ErrorIs(t, err, drivemirror.ErrAPIError)
	assert.Equal(t, 2, count)
	assert.Zero(t, d.TrashCount(f.fileC))
}
