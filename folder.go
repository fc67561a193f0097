package drivemirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/sirupsen/logrus"
)

// Tree materializes the subtree rooted at folderID.
func (s *Session) Tree(ctx context.Context, folderID FileID, filter ListFilter) (*Tree, error) {
	return Materialize(ctx, s.provider, folderID, filter)
}

// DownloadFolder downloads the subtree of folderID into localDir, keeping its hierarchy.
// A local directory is created for every remote folder, including empty ones.
// When siblings share a title only the first is downloaded, as with FirstByTitle.
// It returns the number of files written.
func (s *Session) DownloadFolder(ctx context.Context, folderID FileID, localDir string) (files int, err error) {
	tree, err := Materialize(ctx, s.provider, folderID, ListActive)
	if err != nil {
		return 0, err
	}
	if !tree.Root().IsFolder {
		return 0, fmt.Errorf("'%s' is not a folder: %w", folderID, derrors.ErrNotFolder)
	}

	// Siblings may share a title; the first one claims the local path and later ones are skipped
	// together with their subtrees.
	targets := map[FileID]string{tree.root: localDir}
	claimed := map[string]bool{localDir: true}
	err = tree.Walk(func(n *Node) error {
		target, ok := targets[n.ID]
		if !ok {
			parentDir, ok := targets[n.Parent]
			if !ok {
				return nil
			}
			if err := validateName(n.Title); err != nil {
				return fmt.Errorf("cannot store '%s' locally: %w", n.ID, err)
			}
			target = filepath.Join(parentDir, n.Title)
			if claimed[target] {
				s.logger.WithFields(logrus.Fields{"id": n.ID, "path": target}).Debug("Shadowed by an earlier sibling, skipped")
				return nil
			}
			claimed[target] = true
			targets[n.ID] = target
		}
		if n.IsFolder {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return derrors.NewIOError(fmt.Sprintf("failed to create directory '%s'", target), err)
			}
			return nil
		}
		if err := s.downloadTo(ctx, n.ID, target); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return files, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":    folderID,
		"dir":   localDir,
		"files": files,
	}).Info("Folder downloaded")
	return files, nil
}

// DeleteFolder moves folderID and every node below it to the trash, each exactly once.
// It returns the number of trashed nodes.
func (s *Session) DeleteFolder(ctx context.Context, folderID FileID) (count int, err error) {
	return s.deleteTree(ctx, folderID, "")
}

// DeleteFolderFrom is DeleteFolder where every node is first moved under parentID and then trashed.
func (s *Session) DeleteFolderFrom(ctx context.Context, folderID, parentID FileID) (count int, err error) {
	if parentID == "" {
		return 0, fmt.Errorf("empty parent id: %w", derrors.ErrInvalidArgument)
	}
	return s.deleteTree(ctx, folderID, parentID)
}

func (s *Session) deleteTree(ctx context.Context, folderID, parentID FileID) (count int, err error) {
	tree, err := Materialize(ctx, s.provider, folderID, ListActive)
	if err != nil {
		return 0, err
	}
	err = tree.Walk(func(n *Node) error {
		if parentID != "" {
			if err := s.provider.SetParent(ctx, n.ID, parentID); err != nil {
				return fmt.Errorf("failed to move '%s' under '%s': %w", n.Title, parentID, err)
			}
		}
		if err := s.provider.Trash(ctx, n.ID); err != nil {
			return fmt.Errorf("failed to trash '%s': %w", n.Title, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	s.logger.WithFields(logrus.Fields{"id": folderID, "nodes": count}).Info("Folder deleted")
	return count, nil
}

// RestoreFolder restores folderID and every node below it from the trash.
// Descendants that were trashed on their own before the folder was deleted are restored too.
// Nodes that are not trashed are left as they are, so restoring twice is harmless.
func (s *Session) RestoreFolder(ctx context.Context, folderID FileID) (count int, err error) {
	// Children of a trashed folder are trashed as well, so they must be listed regardless of state.
	tree, err := Materialize(ctx, s.provider, folderID, ListAll)
	if err != nil {
		return 0, err
	}
	err = tree.Walk(func(n *Node) error {
		if err := s.provider.Untrash(ctx, n.ID); err != nil {
			return fmt.Errorf("failed to restore '%s': %w", n.Title, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	s.logger.WithFields(logrus.Fields{"id": folderID, "nodes": count}).Info("Folder restored")
	return count, nil
}
