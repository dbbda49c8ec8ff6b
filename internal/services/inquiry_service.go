// internal/services/inquiry_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type InquiryService struct {
	db       *gorm.DB
	notifier *NotificationService
}

type CreateInquiryRequest struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	Name       string     `json:"name" validate:"required,min=2,max=100"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone,omitempty" validate:"omitempty,phone"`
	Message    string     `json:"message" validate:"required,min=5,max=2000"`
}

type UpdateInquiryRequest struct {
	Status  *models.InquiryStatus `json:"status,omitempty"`
	Message *string               `json:"message,omitempty"`
}

func NewInquiryService(db *gorm.DB, notifier *NotificationService) *InquiryService {
	return &InquiryService{db: db, notifier: notifier}
}

// CreateInquiry accepts both anonymous and signed-in submissions; userID
// is nil for visitors.
func (s *InquiryService) CreateInquiry(userID *uuid.UUID, req *CreateInquiryRequest) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var propertyTitle string
	if req.PropertyID != nil {
		var property models.Property
		if err := s.db.First(&property, "id = ?", *req.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("property not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		propertyTitle = property.Title
	}

	inquiry := &models.Inquiry{
		UserID:     userID,
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		Status:     models.InquiryStatusNew,
	}

	if err := s.db.Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	// Notification failures never fail the submission.
	if s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyNewInquiry(inquiry, propertyTitle); err != nil {
				logrus.WithError(err).WithField("inquiry_id", inquiry.ID).
					Warn("Failed to send inquiry notification")
			}
		}()
	}

	return inquiry, nil
}

func (s *InquiryService) ListInquiries(params utils.PaginationParams, status string) ([]models.Inquiry, int64, error) {
	query := s.db.Model(&models.Inquiry{}).Preload("Property")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR message ILIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "status", "name"})
	query = utils.ApplyPagination(query, params)

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch inquiries: %w", err)
	}

	return inquiries, total, nil
}

func (s *InquiryService) GetInquiry(id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := s.db.Preload("Property").First(&inquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &inquiry, nil
}

func (s *InquiryService) UpdateInquiry(id uuid.UUID, req *UpdateInquiryRequest) (*models.Inquiry, error) {
	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var inquiry models.Inquiry
		if err := tx.First(&inquiry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := make(map[string]interface{})
		if req.Status != nil {
			if !req.Status.Valid() {
				return fmt.Errorf("invalid inquiry status: %s", *req.Status)
			}
			if !inquiry.Status.CanTransition(*req.Status) {
				return fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, inquiry.Status, *req.Status)
			}
			updates["status"] = *req.Status
		}
		if req.Message != nil {
			updates["message"] = *req.Message
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&inquiry).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return s.GetInquiry(id)
}

func (s *InquiryService) DeleteInquiry(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.Inquiry{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete inquiry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
