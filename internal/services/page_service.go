// internal/services/page_service.go
package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

var ErrIllegalStatusTransition = errors.New("status transition not allowed")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type PageService struct {
	db *gorm.DB
}

type CreatePageRequest struct {
	Title           string            `json:"title" validate:"required,min=1,max=255"`
	Slug            string            `json:"slug,omitempty"`
	Content         string            `json:"content,omitempty"`
	HeroTitle       string            `json:"hero_title,omitempty"`
	HeroSubtitle    string            `json:"hero_subtitle,omitempty"`
	HeroDescription string            `json:"hero_description,omitempty"`
	HeroImageURL    string            `json:"hero_image_url,omitempty"`
	Status          models.PageStatus `json:"status,omitempty"`
	SEOTitle        string            `json:"seo_title,omitempty"`
	SEODescription  string            `json:"seo_description,omitempty"`
	SEOKeywords     string            `json:"seo_keywords,omitempty"`
}

type UpdatePageRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content         *string `json:"content,omitempty"`
	HeroTitle       *string `json:"hero_title,omitempty"`
	HeroSubtitle    *string `json:"hero_subtitle,omitempty"`
	HeroDescription *string `json:"hero_description,omitempty"`
	HeroImageURL    *string `json:"hero_image_url,omitempty"`
	SEOTitle        *string `json:"seo_title,omitempty"`
	SEODescription  *string `json:"seo_description,omitempty"`
	SEOKeywords     *string `json:"seo_keywords,omitempty"`
}

func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

func (s *PageService) ListPages(includeUnpublished bool) ([]models.Page, error) {
	query := s.db.Model(&models.Page{})
	if !includeUnpublished {
		query = query.Where("status = ?", models.PageStatusPublished)
	}

	var pages []models.Page
	if err := query.Order("created_at DESC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pages: %w", err)
	}
	return pages, nil
}

// GetPageBySlug is the public read path: only published pages are
// returned unless includeUnpublished is set (admin preview).
func (s *PageService) GetPageBySlug(slug string, includeUnpublished bool) (*models.Page, error) {
	query := s.db.Where("slug = ?", slug)
	if !includeUnpublished {
		query = query.Where("status = ?", models.PageStatusPublished)
	}

	var page models.Page
	if err := query.First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Where("page_id = ?", page.ID).
		Order("section_name ASC, image_order ASC").
		Find(&page.ContentImages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch content images: %w", err)
	}

	return &page, nil
}

func (s *PageService) GetPage(id uuid.UUID) (*models.Page, error) {
	var page models.Page
	if err := s.db.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Where("page_id = ?", page.ID).
		Order("section_name ASC, image_order ASC").
		Find(&page.ContentImages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch content images: %w", err)
	}

	return &page, nil
}

func (s *PageService) CreatePage(req *CreatePageRequest) (*models.Page, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	status := req.Status
	if status == "" {
		status = models.PageStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid page status: %s", status)
	}

	page := &models.Page{
		Title:           req.Title,
		Slug:            slug,
		Content:         req.Content,
		HeroTitle:       req.HeroTitle,
		HeroSubtitle:    req.HeroSubtitle,
		HeroDescription: req.HeroDescription,
		HeroImageURL:    req.HeroImageURL,
		Status:          status,
		SEOTitle:        req.SEOTitle,
		SEODescription:  req.SEODescription,
		SEOKeywords:     req.SEOKeywords,
	}

	if err := s.db.Create(page).Error; err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return page, nil
}

func (s *PageService) UpdatePage(id uuid.UUID, req *UpdatePageRequest) (*models.Page, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var page models.Page
	if err := s.db.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.HeroTitle != nil {
		updates["hero_title"] = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		updates["hero_subtitle"] = *req.HeroSubtitle
	}
	if req.HeroDescription != nil {
		updates["hero_description"] = *req.HeroDescription
	}
	if req.HeroImageURL != nil {
		updates["hero_image_url"] = *req.HeroImageURL
	}
	if req.SEOTitle != nil {
		updates["seo_title"] = *req.SEOTitle
	}
	if req.SEODescription != nil {
		updates["seo_description"] = *req.SEODescription
	}
	if req.SEOKeywords != nil {
		updates["seo_keywords"] = *req.SEOKeywords
	}

	if len(updates) > 0 {
		if err := s.db.Model(&page).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update page: %w", err)
		}
	}

	return s.GetPage(id)
}

// UpdateStatus is the dedicated status mutation; the transition guard
// and the write share one transaction.
func (s *PageService) UpdateStatus(id uuid.UUID, status models.PageStatus) (*models.Page, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid page status: %s", status)
	}

	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var page models.Page
		if err := tx.First(&page, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !page.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, page.Status, status)
		}

		return tx.Model(&page).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return s.GetPage(id)
}

// DeletePage removes the page and its owned content images in one
// transaction; deleting a missing page reports false.
func (s *PageService) DeletePage(id uuid.UUID) (bool, error) {
	var deleted bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&models.ContentImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete content images: %w", err)
		}

		result := tx.Delete(&models.Page{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete page: %w", result.Error)
		}

		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// Slugify lowercases a title and collapses non-alphanumerics to single
// hyphens.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
