// Package images keeps group images in an S3 compatible bucket. Clients
// upload directly through presigned URLs.
package images

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	groupImagesPrefix = "groups/"
	DefaultUploadTTL  = 15 * time.Minute
	DefaultRegion     = "us-east-1"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	UploadTTL time.Duration
}

type Storage struct {
	cfg    Config
	client *minio.Client
}

func New(cfg Config) (*Storage, error) {
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = DefaultUploadTTL
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{cfg: cfg, client: cl}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func ObjectKey(imageID uuid.UUID) string {
	return groupImagesPrefix + imageID.String()
}

// PresignedUploadURL returns a URL the client can PUT the image to.
func (s *Storage) PresignedUploadURL(ctx context.Context, imageID uuid.UUID) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, ObjectKey(imageID), s.cfg.UploadTTL)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *Storage) Remove(ctx context.Context, imageID uuid.UUID) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, ObjectKey(imageID), minio.RemoveObjectOptions{})
}
