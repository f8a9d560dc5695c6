package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"finpress-backend/internal/infrastructure/storage"
	"finpress-backend/pkg/logger"
)

// Result describes one stored image with its resized variants.
type Result struct {
	Key      string            `json:"key"`
	URL      string            `json:"url"`
	Variants map[string]string `json:"variants"`
}

// Service stores validated images in object storage. Every upload produces
// the original plus large, medium and thumbnail variants.
type Service interface {
	UploadImage(ctx context.Context, filename string, data []byte) (*Result, error)
	DeleteImage(ctx context.Context, key string) error
}

type uploadService struct {
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewUploadService(store *storage.MinIOStorage, processor *storage.ImageProcessor) Service {
	return &uploadService{storage: store, processor: processor}
}

func (s *uploadService) UploadImage(ctx context.Context, filename string, data []byte) (*Result, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, err
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	base := fmt.Sprintf("images/%s/%s", time.Now().UTC().Format("2006/01"), uuid.NewString())

	key := base + ext
	url, err := s.storage.Upload(ctx, key, data, contentTypeFor(ext))
	if err != nil {
		return nil, err
	}

	variantURLs := make(map[string]string, len(variants))
	for name, resized := range variants {
		variantKey := fmt.Sprintf("%s_%s.jpg", base, name)
		variantURL, err := s.storage.Upload(ctx, variantKey, resized, "image/jpeg")
		if err != nil {
			return nil, err
		}
		variantURLs[name] = variantURL
	}

	logger.Info("image uploaded", map[string]interface{}{"key": key, "variants": len(variantURLs)})
	return &Result{Key: key, URL: url, Variants: variantURLs}, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func contentTypeFor(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
