// internal/services/blog_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type BlogService struct {
	db *gorm.DB
}

type CreateBlogPostRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Slug     string   `json:"slug,omitempty" validate:"omitempty,max=200"`
	Excerpt  string   `json:"excerpt,omitempty" validate:"max=500"`
	Content  string   `json:"content" validate:"required"`
	CoverURL string   `json:"cover_url,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type UpdateBlogPostRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Slug     *string   `json:"slug,omitempty" validate:"omitempty,max=200"`
	Excerpt  *string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content  *string   `json:"content,omitempty"`
	CoverURL *string   `json:"cover_url,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// ListPosts returns published posts only unless includeUnpublished is
// set by an admin caller.
func (s *BlogService) ListPosts(params utils.PaginationParams, includeUnpublished bool, tag string) ([]models.BlogPost, int64, error) {
	query := s.db.Model(&models.BlogPost{}).Preload("Author")

	if !includeUnpublished {
		query = query.Where("status = ?", models.BlogStatusPublished)
	}
	if tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "published_at", "title"})
	query = utils.ApplyPagination(query, params)

	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch blog posts: %w", err)
	}

	return posts, total, nil
}

func (s *BlogService) GetPostBySlug(slug string, includeUnpublished bool) (*models.BlogPost, error) {
	query := s.db.Preload("Author").Where("slug = ?", slug)
	if !includeUnpublished {
		query = query.Where("status = ?", models.BlogStatusPublished)
	}

	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &post, nil
}

func (s *BlogService) GetPost(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &post, nil
}

func (s *BlogService) CreatePost(authorID uuid.UUID, req *CreateBlogPostRequest) (*models.BlogPost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	post := &models.BlogPost{
		AuthorID: authorID,
		Title:    req.Title,
		Slug:     slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		CoverURL: req.CoverURL,
		Tags:     pq.StringArray(req.Tags),
		Status:   models.BlogStatusDraft,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return post, nil
}

func (s *BlogService) UpdatePost(id uuid.UUID, req *UpdateBlogPostRequest) (*models.BlogPost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Slug != nil && *req.Slug != "" {
			updates["slug"] = Slugify(*req.Slug)
		}
		if req.Excerpt != nil {
			updates["excerpt"] = *req.Excerpt
		}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if req.CoverURL != nil {
			updates["cover_url"] = *req.CoverURL
		}
		if req.Tags != nil {
			updates["tags"] = pq.StringArray(*req.Tags)
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return s.GetPost(id)
}

// UpdateStatus enforces the draft/published/archived workflow; the first
// publish stamps published_at.
func (s *BlogService) UpdateStatus(id uuid.UUID, status models.BlogStatus) (*models.BlogPost, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid blog status: %s", status)
	}

	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !post.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, post.Status, status)
		}

		updates := map[string]interface{}{"status": status}
		if status == models.BlogStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			updates["published_at"] = &now
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return s.GetPost(id)
}

func (s *BlogService) DeletePost(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
