package googledrive

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/jun/driverelay/internal/adapter"
	"github.com/jun/driverelay/internal/model"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveAdapter implements adapter.StorageAdapter for Google Drive. All
// operations are scoped to a single destination folder.
type DriveAdapter struct {
	service  *drive.Service
	folderID string
}

// NewDriveAdapter creates a new DriveAdapter.
// client should be an authenticated http.Client carrying the delegated
// credential.
func NewDriveAdapter(ctx context.Context, client *http.Client, folderID string) (*DriveAdapter, error) {
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive client: %v", err)
	}
	return &DriveAdapter{service: srv, folderID: folderID}, nil
}

// UploadFile creates a file in the destination folder.
func (d *DriveAdapter) UploadFile(ctx context.Context, in adapter.UploadInput) (*model.UploadedFile, error) {
	f := &drive.File{
		Name:    in.Name,
		Parents: []string{d.folderID},
	}

	call := d.service.Files.Create(f).
		SupportsAllDrives(true).
		Fields("id, name, webViewLink, webContentLink")

	if in.MIMEType != "" {
		call.Media(bytes.NewReader(in.Content), googleapi.ContentType(in.MIMEType))
	} else {
		call.Media(bytes.NewReader(in.Content))
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("unable to upload file %q: %v", in.Name, err)
	}

	return &model.UploadedFile{
		Name:         res.Name,
		ID:           res.Id,
		ViewLink:     res.WebViewLink,
		DownloadLink: res.WebContentLink,
	}, nil
}

// ListFolder lists non-trashed items of the destination folder, ordered by
// creation time descending.
func (d *DriveAdapter) ListFolder(ctx context.Context) ([]model.FileEntry, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", d.folderID)
	fields := "nextPageToken, files(id, name, mimeType, createdTime, webViewLink)"

	r, err := d.service.Files.List().
		Q(q).
		OrderBy("createdTime desc").
		Fields(googleapi.Field(fields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list files: %v", err)
	}

	entries := []model.FileEntry{}
	for _, f := range r.Files {
		entries = append(entries, model.FileEntry{
			ID:          f.Id,
			Name:        f.Name,
			MIMEType:    f.MimeType,
			CreatedTime: f.CreatedTime,
			ViewLink:    f.WebViewLink,
		})
	}
	return entries, nil
}
