// internal/services/search_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

type SaveSearchRequest struct {
	Name    string                 `json:"name" validate:"required,min=1,max=100"`
	Filters map[string]interface{} `json:"filters" validate:"required"`
}

type CreateAlertRequest struct {
	Criteria  map[string]interface{} `json:"criteria" validate:"required"`
	Frequency string                 `json:"frequency" validate:"omitempty,oneof=daily weekly"`
}

type UpdateAlertRequest struct {
	Criteria  map[string]interface{} `json:"criteria,omitempty"`
	Frequency *string                `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly"`
	Active    *bool                  `json:"active,omitempty"`
}

func (s *SearchService) SaveSearch(userID uuid.UUID, req SaveSearchRequest) (*models.SavedSearch, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	search := &models.SavedSearch{
		UserID:  userID,
		Name:    req.Name,
		Filters: models.JSONB(req.Filters),
	}
	if err := s.db.Create(search).Error; err != nil {
		return nil, fmt.Errorf("failed to save search: %w", err)
	}

	return search, nil
}

// ListSearches returns the user's saved searches, newest first.
func (s *SearchService) ListSearches(userID uuid.UUID) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch saved searches: %w", err)
	}
	return searches, nil
}

// DeleteSearch removes a saved search owned by the user.
func (s *SearchService) DeleteSearch(userID, searchID uuid.UUID) (bool, error) {
	result := s.db.Where("id = ? AND user_id = ?", searchID, userID).Delete(&models.SavedSearch{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete saved search: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *SearchService) CreateAlert(userID uuid.UUID, req CreateAlertRequest) (*models.PropertyAlert, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = "daily"
	}

	alert := &models.PropertyAlert{
		UserID:    userID,
		Criteria:  models.JSONB(req.Criteria),
		Frequency: frequency,
		Active:    true,
	}
	if err := s.db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	return alert, nil
}

// ListAlerts returns the user's alerts, newest first.
func (s *SearchService) ListAlerts(userID uuid.UUID) ([]models.PropertyAlert, error) {
	var alerts []models.PropertyAlert
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	return alerts, nil
}

func (s *SearchService) UpdateAlert(userID, alertID uuid.UUID, req UpdateAlertRequest) (*models.PropertyAlert, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var alert models.PropertyAlert
	err := s.db.Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Criteria != nil {
		updates["criteria"] = models.JSONB(req.Criteria)
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(&alert).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update alert: %w", err)
		}
	}

	return &alert, nil
}

// DeleteAlert removes an alert owned by the user.
func (s *SearchService) DeleteAlert(userID, alertID uuid.UUID) (bool, error) {
	result := s.db.Where("id = ? AND user_id = ?", alertID, userID).Delete(&models.PropertyAlert{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete alert: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
