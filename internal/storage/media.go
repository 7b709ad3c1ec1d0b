package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ianjohndal5/Rental/internal/config"
)

// Media store key prefixes. Property images and RAPA documents live under
// separate directories so the orphan sweep can scope its listing.
const (
	ImagePrefix    = "properties/images/"
	DocumentPrefix = "properties/rapa/"
	ThumbPrefix    = "properties/thumbs/"
)

// FileUpload carries one uploaded file into the media store.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IMediaStorage defines the interface for media store operations.
type IMediaStorage interface {
	SaveImage(ctx context.Context, upload *FileUpload) (string, error)
	SaveDocument(ctx context.Context, upload *FileUpload) (string, error)
	SaveThumbnail(ctx context.Context, sourceKey string, jpegData []byte) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string, olderThan time.Time) ([]string, error)
}

// s3MediaStorage implements IMediaStorage over an S3 bucket.
type s3MediaStorage struct {
	cfg      *config.Config
	s3Client *s3.Client
}

// NewMediaStorage creates a new S3-backed media store.
func NewMediaStorage(cfg *config.Config) (IMediaStorage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3MediaStorage{
		cfg:      cfg,
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// SaveImage persists a property image under a collision-resistant generated
// name preserving the original extension, and returns the object key.
func (s *s3MediaStorage) SaveImage(ctx context.Context, upload *FileUpload) (string, error) {
	key := ImagePrefix + generatedName("img_", upload.Filename)
	if err := s.put(ctx, key, upload); err != nil {
		return "", err
	}
	return key, nil
}

// SaveDocument persists a RAPA document the same way under its own prefix.
func (s *s3MediaStorage) SaveDocument(ctx context.Context, upload *FileUpload) (string, error) {
	key := DocumentPrefix + generatedName("rapa_", upload.Filename)
	if err := s.put(ctx, key, upload); err != nil {
		return "", err
	}
	return key, nil
}

// SaveThumbnail persists a JPEG thumbnail derived from sourceKey under the
// thumbnail prefix, keeping the generated basename so the pair is traceable.
func (s *s3MediaStorage) SaveThumbnail(ctx context.Context, sourceKey string, jpegData []byte) (string, error) {
	base := strings.TrimSuffix(filepath.Base(sourceKey), filepath.Ext(sourceKey))
	key := ThumbPrefix + base + ".jpg"
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jpegData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail %s: %w", key, err)
	}
	return key, nil
}

// Get opens an object for reading and reports its content type.
func (s *s3MediaStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get %s from media storage: %w", key, err)
	}
	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

func (s *s3MediaStorage) put(ctx context.Context, key string, upload *FileUpload) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to media storage: %w", key, err)
	}
	return nil
}

// Delete removes an object from the media store.
func (s *s3MediaStorage) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from media storage: %w", key, err)
	}
	return nil
}

// ListKeys returns every object key under prefix whose last modification is
// before olderThan. The age filter keeps the orphan sweep from racing an
// in-flight create whose row has not committed yet.
func (s *s3MediaStorage) ListKeys(ctx context.Context, prefix string, olderThan time.Time) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list media storage keys under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			if obj.LastModified != nil && obj.LastModified.After(olderThan) {
				continue
			}
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// generatedName builds "<prefix><uuid><ext>" keeping the original extension.
func generatedName(prefix, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return prefix + uuid.NewString() + ext
}
