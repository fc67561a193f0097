package drivemirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// Drive implements Provider on top of the Google Drive v3 API.
type Drive struct {
	service *drive.Service
}

var _ Provider = (*Drive)(nil)

// NewDrive creates a Drive provider with the given drive.Service.
// The service should be authenticated before being passed to this function.
func NewDrive(service *drive.Service) *Drive {
	return &Drive{service: service}
}

func (d *Drive) Stat(ctx context.Context, id FileID) (item Item, err error) {
	f, found, err := findByID(ctx, d.service, string(id))
	if err != nil {
		return Item{}, err
	}
	if !found {
		return Item{}, fmt.Errorf("file '%s': %w", id, derrors.ErrNotFound)
	}
	return newItem(f), nil
}

func (d *Drive) Create(ctx context.Context, name string, parentID FileID, isFolder bool) (item Item, err error) {
	file := &drive.File{
		Name:    name,
		Parents: []string{string(parentID)},
	}
	if isFolder {
		file.MimeType = mimeTypeGoogleAppFolder
	}
	f, err := d.service.Files.Create(file).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return Item{}, derrors.NewAPIError(fmt.Sprintf("failed to create '%s' in '%s'", name, parentID), err)
	}
	return newItem(f), nil
}

func (d *Drive) ListChildren(ctx context.Context, parentID FileID, filter ListFilter) (children []Item, err error) {
	files, err := queryFiles(ctx, d.service, childrenQuery(parentID, filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list children of '%s': %w", parentID, err)
	}
	for _, f := range files {
		children = append(children, newItem(f))
	}
	return children, nil
}

func (d *Drive) Search(ctx context.Context, title string) (results []Item, err error) {
	q := fmt.Sprintf("name = '%s' and trashed = false", escapeQuery(title))
	files, err := queryFiles(ctx, d.service, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search '%s': %w", title, err)
	}
	for _, f := range files {
		results = append(results, newItem(f))
	}
	return results, nil
}

func (d *Drive) Upload(ctx context.Context, id FileID, r io.Reader) (err error) {
	_, err = d.service.Files.Update(string(id), &drive.File{}).
		SupportsAllDrives(true).
		Media(r).
		Context(ctx).
		Do()
	if err != nil {
		return derrors.NewAPIError(fmt.Sprintf("failed to upload file '%s'", id), err)
	}
	return nil
}

// Download streams the content of id into w in a single request. Folders and google-apps documents
// have no binary content; the API rejects them and the error matches ErrNotReadable.
func (d *Drive) Download(ctx context.Context, id FileID, w io.Writer) (err error) {
	resp, err := d.service.Files.Get(string(id)).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return derrors.NewAPIError(fmt.Sprintf("failed to download file '%s'", id), err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			closeErr = derrors.NewIOError("failed to close file body", closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return derrors.NewIOError("failed to read file body", err)
	}
	return nil
}

func (d *Drive) Trash(ctx context.Context, id FileID) (err error) {
	_, err = d.service.Files.Update(string(id), &drive.File{Trashed: true}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return derrors.NewAPIError(fmt.Sprintf("failed to move '%s' to trash", id), err)
	}
	return nil
}

func (d *Drive) Untrash(ctx context.Context, id FileID) (err error) {
	_, err = d.service.Files.Update(string(id), &drive.File{Trashed: false, ForceSendFields: []string{"Trashed"}}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return derrors.NewAPIError(fmt.Sprintf("failed to restore '%s' from trash", id), err)
	}
	return nil
}

func (d *Drive) SetParent(ctx context.Context, id, newParentID FileID) (err error) {
	f, found, err := findByID(ctx, d.service, string(id))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("file '%s': %w", id, derrors.ErrNotFound)
	}
	_, err = d.service.Files.Update(string(id), &drive.File{}).
		SupportsAllDrives(true).
		RemoveParents(strings.Join(f.Parents, ",")).
		AddParents(string(newParentID)).
		Context(ctx).
		Do()
	if err != nil {
		return derrors.NewAPIError(fmt.Sprintf("failed to move '%s' to '%s'", id, newParentID), err)
	}
	return nil
}

const (
	driveFileFields  = "id,name,mimeType,parents,size,trashed"
	driveFilesFields = "nextPageToken,files(id,name,mimeType,parents,size,trashed)"
)

func childrenQuery(parentID FileID, filter ListFilter) string {
	q := fmt.Sprintf("'%s' in parents", escapeQuery(string(parentID)))
	switch filter {
	case ListActive:
		q += " and trashed = false"
	case ListTrashed:
		q += " and trashed = true"
	}
	return q
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

func queryFiles(ctx context.Context, s *drive.Service, query string) (results []*drive.File, err error) {
	err = s.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(query).
		Fields(driveFilesFields).
		Pages(ctx, func(list *drive.FileList) error {
			results = append(results, list.Files...)
			return nil
		})
	if err != nil {
		return nil, derrors.NewAPIError("failed to query files", err)
	}
	return results, nil
}

func findByID(ctx context.Context, s *drive.Service, fileID string) (file *drive.File, found bool, err error) {
	file, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			if gErr.Code == http.StatusNotFound {
				return nil, false, nil
			}
		}
		return nil, false, derrors.NewAPIError("failed to get file", err)
	}
	return file, true, nil
}
