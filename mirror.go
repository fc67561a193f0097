package drivemirror

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/sirupsen/logrus"
)

// MirrorOptions controls Mirror.
type MirrorOptions struct {
	// SkipExistingFiles skips a local file when the remote folder already has an item with its title.
	// Without it every file is uploaded as a new remote file, so mirroring twice duplicates files.
	SkipExistingFiles bool
}

// MirrorResult summarizes a Mirror call.
type MirrorResult struct {
	RootID FileID
	// Folders maps slash paths relative to the local root ("." for the root itself) to remote folder ids.
	Folders        map[string]FileID
	FoldersCreated int
	FoldersReused  int
	FilesUploaded  int
	FilesSkipped   int
}

// Mirror replays the directory tree of src under a top-level remote folder titled remoteName.
// The folder is reused when one already exists in the drive root, otherwise created.
// Every subdirectory is mirrored recursively: a remote folder with the same title is reused
// (first match) or created, and every regular file is uploaded into it.
func (s *Session) Mirror(ctx context.Context, src fs.FS, remoteName string, opts MirrorOptions) (result MirrorResult, err error) {
	if err := validateName(remoteName); err != nil {
		return MirrorResult{}, err
	}

	rootChildren, err := s.provider.ListChildren(ctx, RootID, ListActive)
	if err != nil {
		return MirrorResult{}, fmt.Errorf("failed to look up '%s': %w", remoteName, err)
	}
	result.Folders = map[string]FileID{}
	rootID, created, err := s.ensureFolder(ctx, RootID, remoteName, rootChildren, &result)
	if err != nil {
		return MirrorResult{}, err
	}
	result.RootID = rootID
	result.Folders["."] = rootID

	if err := s.mirrorDir(ctx, src, ".", rootID, created, opts, &result); err != nil {
		return MirrorResult{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"folder":         remoteName,
		"id":             rootID,
		"foldersCreated": result.FoldersCreated,
		"foldersReused":  result.FoldersReused,
		"filesUploaded":  result.FilesUploaded,
		"filesSkipped":   result.FilesSkipped,
	}).Info("Folder mirrored")
	return result, nil
}

func (s *Session) mirrorDir(ctx context.Context, src fs.FS, dir string, remoteID FileID, fresh bool, opts MirrorOptions, result *MirrorResult) error {
	entries, err := fs.ReadDir(src, dir)
	if err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to read directory '%s'", dir), err)
	}

	// A folder created by this call is known to be empty.
	var children []Item
	if !fresh {
		children, err = s.provider.ListChildren(ctx, remoteID, ListActive)
		if err != nil {
			return fmt.Errorf("failed to list remote folder of '%s': %w", dir, err)
		}
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		p := path.Join(dir, entry.Name())
		if opts.SkipExistingFiles {
			if existing, found := FirstByTitle(children, entry.Name(), false); found && !existing.IsFolder {
				s.logger.WithFields(logrus.Fields{"path": p, "id": existing.ID}).Debug("File already exists, skipped")
				result.FilesSkipped++
				continue
			}
		}
		if _, err := s.uploadFromFS(ctx, src, p, remoteID); err != nil {
			return err
		}
		result.FilesUploaded++
	}

	for _, entry := range entries {
		p := path.Join(dir, entry.Name())
		if !entry.IsDir() {
			if !entry.Type().IsRegular() {
				s.logger.WithField("path", p).Debug("Skipped non-regular file")
			}
			continue
		}
		folderID, created, err := s.ensureFolder(ctx, remoteID, entry.Name(), children, result)
		if err != nil {
			return err
		}
		result.Folders[p] = folderID
		if err := s.mirrorDir(ctx, src, p, folderID, created, opts, result); err != nil {
			return err
		}
	}
	return nil
}

// ensureFolder reuses the first folder titled name among children or creates it under parentID.
func (s *Session) ensureFolder(ctx context.Context, parentID FileID, name string, children []Item, result *MirrorResult) (id FileID, created bool, err error) {
	if existing, found := FirstByTitle(children, name, true); found {
		s.logger.WithFields(logrus.Fields{"folder": name, "id": existing.ID}).Debug("Folder reused")
		result.FoldersReused++
		return existing.ID, false, nil
	}
	item, err := s.provider.Create(ctx, name, parentID, true)
	if err != nil {
		return "", false, fmt.Errorf("failed to create folder '%s': %w", name, err)
	}
	s.logger.WithFields(logrus.Fields{"folder": name, "id": item.ID}).Debug("Folder created")
	result.FoldersCreated++
	return item.ID, true, nil
}

func (s *Session) uploadFromFS(ctx context.Context, src fs.FS, p string, parentID FileID) (item Item, err error) {
	f, err := src.Open(p)
	if err != nil {
		return Item{}, derrors.NewIOError(fmt.Sprintf("failed to open '%s'", p), err)
	}
	defer f.Close()
	return s.upload(ctx, path.Base(p), parentID, f)
}

func (s *Session) upload(ctx context.Context, name string, parentID FileID, r io.Reader) (item Item, err error) {
	item, err = s.provider.Create(ctx, name, parentID, false)
	if err != nil {
		return Item{}, fmt.Errorf("failed to create file '%s': %w", name, err)
	}
	if err := s.provider.Upload(ctx, item.ID, r); err != nil {
		return Item{}, fmt.Errorf("failed to upload file '%s': %w", name, err)
	}
	s.logger.WithFields(logrus.Fields{"file": name, "id": item.ID, "parent": parentID}).Debug("File uploaded")
	return item, nil
}
