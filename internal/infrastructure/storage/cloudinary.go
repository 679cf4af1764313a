package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/derf567/SPMC-OJT-REFERRAL/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

// StoredFile is the opaque reference persisted alongside document metadata.
type StoredFile struct {
	ID  string
	URL string
}

// FileStore puts uploaded document bytes into durable storage and returns
// an opaque reference for later retrieval.
type FileStore interface {
	Put(ctx context.Context, file io.Reader, filename string) (*StoredFile, error)
}

type cloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg config.StorageConfig) (FileStore, error) {
	client, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	logrus.Info("Cloudinary file store initialized")

	return &cloudinaryStore{
		client: client,
		folder: cfg.UploadFolder,
	}, nil
}

func (s *cloudinaryStore) Put(ctx context.Context, file io.Reader, filename string) (*StoredFile, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:           s.folder,
		FilenameOverride: filename,
		UseFilename:      api.Bool(true),
		UniqueFilename:   api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &StoredFile{
		ID:  resp.PublicID,
		URL: resp.SecureURL,
	}, nil
}
