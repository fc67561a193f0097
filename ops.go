package drivemirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/sirupsen/logrus"
)

// CreateFolder creates a folder named name under parentID, or under the drive root when parentID is empty.
func (s *Session) CreateFolder(ctx context.Context, name string, parentID FileID) (item Item, err error) {
	if err := validateName(name); err != nil {
		return Item{}, err
	}
	if parentID == "" {
		parentID = RootID
	}
	item, err = s.provider.Create(ctx, name, parentID, true)
	if err != nil {
		return Item{}, fmt.Errorf("failed to create folder '%s': %w", name, err)
	}
	s.logger.WithFields(logrus.Fields{"folder": name, "id": item.ID}).Info("Folder created")
	return item, nil
}

// FindFolder returns the first folder titled name in the drive root.
func (s *Session) FindFolder(ctx context.Context, name string) (item Item, found bool, err error) {
	children, err := s.provider.ListChildren(ctx, RootID, ListActive)
	if err != nil {
		return Item{}, false, fmt.Errorf("failed to find folder '%s': %w", name, err)
	}
	item, found = FirstByTitle(children, name, true)
	return item, found, nil
}

// FindChild returns the first file or folder titled name directly under parentID.
func (s *Session) FindChild(ctx context.Context, parentID FileID, name string) (item Item, found bool, err error) {
	children, err := s.provider.ListChildren(ctx, parentID, ListActive)
	if err != nil {
		return Item{}, false, fmt.Errorf("failed to find '%s' in '%s': %w", name, parentID, err)
	}
	item, found = FirstByTitle(children, name, false)
	return item, found, nil
}

// Search returns every non-trashed item titled name anywhere in the drive.
func (s *Session) Search(ctx context.Context, name string) (items []Item, err error) {
	return s.provider.Search(ctx, name)
}

// UploadFile uploads the local file at localPath under parentID, titled with its base name.
// An empty parentID uploads to the drive root.
func (s *Session) UploadFile(ctx context.Context, localPath string, parentID FileID) (item Item, err error) {
	if parentID == "" {
		parentID = RootID
	}
	f, err := os.Open(localPath)
	if err != nil {
		return Item{}, derrors.NewIOError(fmt.Sprintf("failed to open '%s'", localPath), err)
	}
	defer f.Close()

	item, err = s.upload(ctx, filepath.Base(localPath), parentID, f)
	if err != nil {
		return Item{}, err
	}
	s.logger.WithFields(logrus.Fields{"file": localPath, "id": item.ID}).Info("File uploaded")
	return item, nil
}

// DownloadFile downloads fileID into localDir under its remote title and returns the local path.
func (s *Session) DownloadFile(ctx context.Context, fileID FileID, localDir string) (localPath string, err error) {
	item, err := s.provider.Stat(ctx, fileID)
	if err != nil {
		return "", err
	}
	if item.IsFolder {
		return "", fmt.Errorf("'%s' is a folder: %w", fileID, derrors.ErrNotReadable)
	}
	if item.IsAppFile() {
		return "", fmt.Errorf("'%s' is a google-apps document: %w", fileID, derrors.ErrNotReadable)
	}
	if err := validateName(item.Title); err != nil {
		return "", fmt.Errorf("cannot store '%s' locally: %w", fileID, err)
	}
	localPath = filepath.Join(localDir, item.Title)
	if err := s.downloadTo(ctx, fileID, localPath); err != nil {
		return "", err
	}
	s.logger.WithFields(logrus.Fields{"id": fileID, "file": localPath}).Info("File downloaded")
	return localPath, nil
}

// DeleteFile moves fileID to the trash.
func (s *Session) DeleteFile(ctx context.Context, fileID FileID) error {
	if err := s.provider.Trash(ctx, fileID); err != nil {
		return err
	}
	s.logger.WithField("id", fileID).Info("File deleted")
	return nil
}

// RestoreFile restores fileID from the trash.
func (s *Session) RestoreFile(ctx context.Context, fileID FileID) error {
	if err := s.provider.Untrash(ctx, fileID); err != nil {
		return err
	}
	s.logger.WithField("id", fileID).Info("File restored")
	return nil
}

// Move moves the file or folder id under newParentID.
func (s *Session) Move(ctx context.Context, id, newParentID FileID) error {
	target, err := s.provider.Stat(ctx, newParentID)
	if err != nil {
		return err
	}
	if !target.IsFolder {
		return fmt.Errorf("'%s' is not a folder: %w", newParentID, derrors.ErrNotFolder)
	}
	if err := s.provider.SetParent(ctx, id, newParentID); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"id": id, "parent": newParentID}).Info("Moved")
	return nil
}

func (s *Session) downloadTo(ctx context.Context, id FileID, localPath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to create directory of '%s'", localPath), err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to create '%s'", localPath), err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil {
			closeErr = derrors.NewIOError(fmt.Sprintf("failed to close '%s'", localPath), closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	if err := s.provider.Download(ctx, id, f); err != nil {
		return fmt.Errorf("failed to download '%s' to '%s': %w", id, localPath, err)
	}
	s.logger.WithFields(logrus.Fields{"id": id, "file": localPath}).Debug("File downloaded")
	return nil
}
