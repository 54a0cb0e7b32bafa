// Package storage uploads admin images to public buckets.
package storage

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marmita-storefront/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Bucket string

const (
	BucketProducts Bucket = "marmitas"
	BucketBanners  Bucket = "banners"
	BucketLogos    Bucket = "logos"
)

var (
	ErrEmptyData     = errors.New("image data is empty")
	ErrUnknownBucket = errors.New("unknown storage bucket")
)

// Backend is the object-storage side of the REST client.
type Backend interface {
	Upload(ctx context.Context, bucket, object, mime string, data []byte) error
	PublicURL(bucket, object string) string
}

type Service interface {
	Upload(ctx context.Context, bucket Bucket, data []byte, mime string) (string, error)
}

type service struct {
	backend Backend
	newName func() string
}

func NewService(backend Backend) Service {
	return &service{
		backend: backend,
		newName: func() string { return uuid.NewString() },
	}
}

// Upload stores data under a fresh object name and returns its public URL.
// An empty mime is sniffed from the data.
func (s *service) Upload(ctx context.Context, bucket Bucket, data []byte, mime string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("bucket", string(bucket)),
	)

	switch bucket {
	case BucketProducts, BucketBanners, BucketLogos:
	default:
		return "", ErrUnknownBucket
	}
	if len(data) == 0 {
		return "", ErrEmptyData
	}

	mime = strings.ToLower(strings.TrimSpace(mime))
	if mime == "" {
		mime, _, _ = strings.Cut(http.DetectContentType(data), ";")
	}

	object := s.newName() + "." + Extension(mime)
	if err := s.backend.Upload(ctx, string(bucket), object, mime, data); err != nil {
		log.Error("image upload failed", zap.Error(err))
		return "", err
	}

	log.Info("image uploaded", zap.String("object", object), zap.Int("bytes", len(data)))
	return s.backend.PublicURL(string(bucket), object), nil
}

// Extension maps an image mime type to the stored file extension; unknown
// types are stored as jpg.
func Extension(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/heic":
		return "heic"
	default:
		return "jpg"
	}
}
