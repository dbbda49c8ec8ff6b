// internal/services/image_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/cache"
	"github.com/makaohomes/makao-backend/internal/models"
)

type ImageService struct {
	db             *gorm.DB
	storageService *StorageService
	cache          *cache.Cache
}

type AttachImageRequest struct {
	URL       string           `json:"url" validate:"required"`
	AltText   string           `json:"alt_text,omitempty"`
	Order     int              `json:"order"`
	ImageType models.ImageType `json:"image_type,omitempty"`
}

// DetachResult reports the primary database deletion and, separately,
// whether the backing blob could be cleaned up. A failed blob delete
// never rolls back the row deletion; the orphaned key is surfaced so
// operators can reconcile it.
type DetachResult struct {
	Deleted     bool   `json:"deleted"`
	OrphanedKey string `json:"orphaned_key,omitempty"`
}

func NewImageService(db *gorm.DB, storageService *StorageService, listingCache *cache.Cache) *ImageService {
	return &ImageService{
		db:             db,
		storageService: storageService,
		cache:          listingCache,
	}
}

func (s *ImageService) AttachPropertyImage(ctx context.Context, propertyID uuid.UUID, req *AttachImageRequest) (*models.Image, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	imageType := req.ImageType
	if imageType == "" {
		imageType = models.ImageTypeProperty
	}

	image := &models.Image{
		PropertyID: propertyID,
		URL:        req.URL,
		AltText:    req.AltText,
		ImageOrder: req.Order,
		ImageType:  imageType,
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	s.invalidateListings(ctx)

	return image, nil
}

// DetachPropertyImage deletes the row first; the object-storage delete
// is best-effort afterwards. Sibling order values are never renumbered,
// so gaps are expected.
func (s *ImageService) DetachPropertyImage(ctx context.Context, imageID uuid.UUID) (*DetachResult, error) {
	var image models.Image
	if err := s.db.First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DetachResult{Deleted: false}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&models.Image{}, "id = ?", imageID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete image: %w", err)
	}

	s.invalidateListings(ctx)

	return s.cleanupBlob(image.URL), nil
}

func (s *ImageService) ListPropertyImages(propertyID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	if err := s.db.Where("property_id = ?", propertyID).
		Order("image_order ASC").
		Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch images: %w", err)
	}
	return images, nil
}

func (s *ImageService) AttachContentImage(pageID uuid.UUID, sectionName string, req *AttachImageRequest) (*models.ContentImage, error) {
	var page models.Page
	if err := s.db.First(&page, "id = ?", pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	imageType := req.ImageType
	if imageType == "" {
		imageType = models.ImageTypeGallery
	}

	image := &models.ContentImage{
		PageID:      pageID,
		SectionName: sectionName,
		URL:         req.URL,
		AltText:     req.AltText,
		ImageOrder:  req.Order,
		ImageType:   imageType,
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to attach content image: %w", err)
	}

	return image, nil
}

func (s *ImageService) DetachContentImage(imageID uuid.UUID) (*DetachResult, error) {
	var image models.ContentImage
	if err := s.db.First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DetachResult{Deleted: false}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&models.ContentImage{}, "id = ?", imageID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete content image: %w", err)
	}

	return s.cleanupBlob(image.URL), nil
}

func (s *ImageService) ListContentImages(pageID uuid.UUID, sectionName string) ([]models.ContentImage, error) {
	query := s.db.Where("page_id = ?", pageID)
	if sectionName != "" {
		query = query.Where("section_name = ?", sectionName)
	}

	var images []models.ContentImage
	if err := query.Order("image_order ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch content images: %w", err)
	}
	return images, nil
}

// Property images are embedded in cached listing payloads, so every
// property-image mutation bumps the listing cache version. Content
// images belong to pages and are never cached.
func (s *ImageService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListings(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate listing cache")
	}
}

func (s *ImageService) cleanupBlob(url string) *DetachResult {
	result := &DetachResult{Deleted: true}

	if s.storageService == nil {
		return result
	}

	key, ok := s.storageService.KeyFromURL(url)
	if !ok {
		return result
	}

	if err := s.storageService.DeleteFile(key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Orphaned blob left in object storage")
		result.OrphanedKey = key
	}

	return result
}
