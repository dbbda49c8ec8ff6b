// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment,omitempty"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview creates a pending review; it becomes public only after
// moderation.
func (s *ReviewService) SubmitReview(userID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	review := &models.Review{
		UserID:     userID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Status:     models.ReviewStatusPending,
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ListApproved is the public read path for a property's reviews.
func (s *ReviewService) ListApproved(propertyID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("property_id = ? AND status = ?", propertyID, models.ReviewStatusApproved).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// ListAll is the moderation queue, joined with the property title and
// reviewer for the admin screen.
func (s *ReviewService) ListAll(params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Preload("User").Preload("Property")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "rating", "status"})
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *ReviewService) GetReview(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").Preload("Property").First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) UpdateStatus(id uuid.UUID, status models.ReviewStatus) (*models.Review, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid review status: %s", status)
	}

	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !review.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, review.Status, status)
		}

		return tx.Model(&review).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return s.GetReview(id)
}

func (s *ReviewService) DeleteReview(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete review: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
