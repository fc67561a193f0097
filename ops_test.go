package drivemirror_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindFolder(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	_, found, err := s.FindFolder(ctx, "docs")
	require.NoError(t, err)
	assert.False(t, found)

	created, err := s.CreateFolder(ctx, "docs", "")
	require.NoError(t, err)
	assert.Equal(t, drivemirror.RootID, created.ParentID)

	got, found, err := s.FindFolder(ctx, "docs")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, got.ID)

	_, err = s.CreateFolder(ctx, "a/b", "")
	assert.ErrorIs(t, err, drivemirror.ErrInvalidPath)
}

func TestFindChildAndSearch(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)
	_, err := d.Create(ctx, "fileC", drivemirror.RootID, false)
	require.NoError(t, err)

	got, found, err := s.FindChild(ctx, f.subB, "fileC")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, f.fileC, got.ID)

	_, found, err = s.FindChild(ctx, f.folder, "fileC")
	require.NoError(t, err)
	assert.False(t, found)

	all, err := s.Search(ctx, "fileC")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUploadAndDownloadFile(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("remember"), 0o644))

	item, err := s.UploadFile(ctx, src, f.subB)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", item.Title)
	assert.Equal(t, f.subB, item.ParentID)

	dst := t.TempDir()
	localPath, err := s.DownloadFile(ctx, item.ID, dst)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dst, "notes.txt"), localPath)
	data, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, "remember", string(data))

	_, err = s.DownloadFile(ctx, f.subB, dst)
	assert.ErrorIs(t, err, drivemirror.ErrNotReadable)

	_, err = s.UploadFile(ctx, filepath.Join(t.TempDir(), "missing"), "")
	assert.ErrorIs(t, err, drivemirror.ErrIOError)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeleteAndRestoreFile(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)

	require.NoError(t, s.DeleteFile(ctx, f.fileA))
	assert.Equal(t, []string{"subfolderB"}, titles(childrenOf(t, d, f.folder)))

	require.NoError(t, s.RestoreFile(ctx, f.fileA))
	require.NoError(t, s.RestoreFile(ctx, f.fileA))
	assert.Equal(t, []string{"fileA", "subfolderB"}, titles(childrenOf(t, d, f.folder)))
}

func TestMove(t *testing.T) {
	s, d := newTestSession(t)
	ctx := context.Background()
	f := buildFixture(t, d)

	require.NoError(t, s.Move(ctx, f.fileA, f.subB))
	assert.Equal(t, []string{"subfolderB"}, titles(childrenOf(t, d, f.folder)))
	assert.Equal(t, []string{"fileA", "fileC"}, titles(childrenOf(t, d, f.subB)))

	assert.ErrorIs(t, s.Move(ctx, f.fileA, f.fileC), drivemirror.ErrNotFolder)
	assert.ErrorIs(t, s.Move(ctx, f.folder, f.subB), drivemirror.ErrInvalidArgument)
	assert.ErrorIs(t, s.Move(ctx, f.fileA, "missing"), drivemirror.ErrNotFound)
}
