// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite is idempotent: saving an already saved property returns
// the existing row.
func (s *FavoriteService) AddFavorite(userID, propertyID uuid.UUID) (*models.Favorite, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	favorite := &models.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.db.Create(favorite).Error; err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	return favorite, nil
}

func (s *FavoriteService) RemoveFavorite(userID, propertyID uuid.UUID) (bool, error) {
	result := s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&models.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListFavorites returns the user's saved properties in normalized form,
// newest first.
func (s *FavoriteService) ListFavorites(userID uuid.UUID, params utils.PaginationParams) ([]NormalizedProperty, int64, error) {
	query := s.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var favorites []models.Favorite
	if err := query.
		Preload("Property").
		Preload("Property.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		Find(&favorites).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return normalizeFavorites(favorites), total, nil
}

// normalizeFavorites flattens preloaded favorites into normalized property
// records. Rows whose property failed to preload are skipped.
func normalizeFavorites(favorites []models.Favorite) []NormalizedProperty {
	normalized := make([]NormalizedProperty, 0, len(favorites))
	for i := range favorites {
		if favorites[i].Property == nil {
			continue
		}
		normalized = append(normalized, *NormalizeProperty(favorites[i].Property))
	}
	return normalized
}

// IsFavorited reports whether the user has saved the property.
func (s *FavoriteService) IsFavorited(userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
