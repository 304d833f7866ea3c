package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	apperrors "github.com/SirClappington/dj-product-explorer/internal/errors"
)

// GCSSource reads the dataset from a Firebase / Cloud Storage bucket.
type GCSSource struct {
	bucket     *storage.BucketHandle
	bucketName string
	objectName string
	logger     *logrus.Logger
}

func NewGCSSource(ctx context.Context, bucketName, objectName, credentialsFilePath string, logger *logrus.Logger) (*GCSSource, error) {
	if bucketName == "" || objectName == "" {
		return nil, fmt.Errorf("gs:// source needs both a bucket and an object name")
	}

	var opts []option.ClientOption
	if credentialsFilePath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFilePath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, apperrors.NewExternalError("firebase", fmt.Errorf("error initializing firebase app: %w", err))
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, apperrors.NewExternalError("firebase", fmt.Errorf("error initializing firebase storage client: %w", err))
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, apperrors.NewExternalError("firebase", fmt.Errorf("error opening bucket %s: %w", bucketName, err))
	}

	return &GCSSource{
		bucket:     bucket,
		bucketName: bucketName,
		objectName: objectName,
		logger:     logger,
	}, nil
}

func (s *GCSSource) Name() string {
	return fmt.Sprintf("gs://%s/%s", s.bucketName, s.objectName)
}

func (s *GCSSource) Fetch(ctx context.Context) ([]byte, error) {
	rc, err := s.bucket.Object(s.objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("object %s not found", s.Name()))
		}
		return nil, apperrors.NewExternalError("cloud storage", fmt.Errorf("error creating reader: %w", err))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperrors.NewExternalError("cloud storage", fmt.Errorf("error downloading dataset: %w", err))
	}

	s.logger.WithFields(logrus.Fields{
		"object": s.Name(),
		"bytes":  len(data),
	}).Info("Dataset downloaded from cloud storage")
	return data, nil
}
