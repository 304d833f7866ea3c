package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	apperrors "github.com/SirClappington/dj-product-explorer/internal/errors"
)

// S3API is the subset of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset from an S3 bucket.
type S3Source struct {
	client S3API
	bucket string
	key    string
	logger *logrus.Logger
}

func NewS3Source(ctx context.Context, bucket, key, region string, logger *logrus.Logger) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3:// source needs both a bucket and a key")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, apperrors.NewExternalError("s3", fmt.Errorf("error loading aws config: %w", err))
	}

	return NewS3SourceWithClient(s3.NewFromConfig(awsCfg), bucket, key, logger), nil
}

func NewS3SourceWithClient(client S3API, bucket, key string, logger *logrus.Logger) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}
}

func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("object %s not found", s.Name()))
		}
		return nil, apperrors.NewExternalError("s3", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("s3", fmt.Errorf("error downloading dataset: %w", err))
	}

	s.logger.WithFields(logrus.Fields{
		"object": s.Name(),
		"bytes":  len(data),
	}).Info("Dataset downloaded from s3")
	return data, nil
}
