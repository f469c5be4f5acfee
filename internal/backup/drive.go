package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveUploader stores backups in a Google Drive folder.
type DriveUploader struct {
	service *drive.Service
}

var _ uploader = (*DriveUploader)(nil)

func NewDriveUploader(ctx context.Context, credentialsJson []byte) (*DriveUploader, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &DriveUploader{service: driveService}, nil
}

func (u *DriveUploader) EnsureFolder(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	folders, err := u.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve folders: %w", err)
	}

	switch len(folders.Files) {
	case 0:
		log.Printf("backups folder %s not found, creating ...", name)
	case 1:
		return folders.Files[0].Id, nil
	default:
		log.Warnf("found %d backups folders named %s, will take the first one", len(folders.Files), name)
		return folders.Files[0].Id, nil
	}

	created, err := u.service.
		Files.Create(&drive.File{
			Name:     name,
			MimeType: folderMimeType,
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (u *DriveUploader) List(ctx context.Context, folderID string) ([]RemoteFile, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)

	var files []RemoteFile
	err := u.service.
		Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, createdTime)").
		Context(ctx).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				createdAt, err := time.Parse(time.RFC3339, f.CreatedTime)
				if err != nil {
					log.Warnf("parse created time of %s: %s", f.Name, err)
				}
				files = append(files, RemoteFile{
					ID:        f.Id,
					Name:      f.Name,
					CreatedAt: createdAt,
				})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (u *DriveUploader) Upload(ctx context.Context, folderID, name string, content []byte) (string, error) {
	created, err := u.service.
		Files.Create(&drive.File{
			Name:     name,
			MimeType: "application/json",
			Parents:  []string{folderID},
		}).
		Fields("id, parents").
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (u *DriveUploader) Delete(ctx context.Context, fileID string) error {
	return u.service.Files.Delete(fileID).Context(ctx).Do()
}
