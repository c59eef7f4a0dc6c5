package storage

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const drivePrefix = "gdrive:"

// Drive uploads attachments into one Google Drive folder using a service account.
type Drive struct {
	files    *drive.FilesService
	folderID string
}

// NewDrive builds a Drive store from service account JSON credentials.
func NewDrive(ctx context.Context, credentialsJSON []byte, folderID string) (*Drive, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is required")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}
	svc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &Drive{files: svc.Files, folderID: folderID}, nil
}

// Store implements services.AttachmentStore.
func (d *Drive) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	file, err := d.files.Create(&drive.File{
		Name:    filename,
		Parents: []string{d.folderID},
	}).Media(content).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload to drive: %w", err)
	}
	return drivePrefix + file.Id, nil
}
