// internal/services/property_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/cache"
	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

// The featured rail on the homepage shows at most three properties. The
// cap is enforced here, inside the flagging transaction, so concurrent
// admin writers cannot exceed it.
const maxFeaturedProperties = 3

var ErrFeaturedCapReached = errors.New("featured limit of 3 properties reached")

type PropertyService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// PropertyFilters are all optional and conjunctive.
type PropertyFilters struct {
	utils.PaginationParams
	Location     string                 `json:"location,omitempty"`
	PropertyType string                 `json:"property_type,omitempty"`
	MinPrice     *int64                 `json:"min_price,omitempty"`
	MaxPrice     *int64                 `json:"max_price,omitempty"`
	MinBeds      *int                   `json:"min_beds,omitempty"`
	MinBaths     *int                   `json:"min_baths,omitempty"`
	MinParking   *int                   `json:"min_parking,omitempty"`
	Status       *models.PropertyStatus `json:"status,omitempty"`
	Featured     *bool                  `json:"featured,omitempty"`
}

type PropertyImageInput struct {
	URL       string           `json:"url" validate:"required"`
	AltText   string           `json:"alt_text,omitempty"`
	Order     int              `json:"order"`
	ImageType models.ImageType `json:"image_type,omitempty"`
}

// CreatePropertyRequest accepts the superset of legacy and canonical
// field names the admin screens still send; beds/bedrooms and
// baths/bathrooms are the same attribute, and Price arrives as either a
// number or a display string.
type CreatePropertyRequest struct {
	Title           string                 `json:"title" validate:"required,min=3,max=255"`
	Description     string                 `json:"description,omitempty"`
	Price           interface{}            `json:"price" validate:"required"`
	Location        string                 `json:"location,omitempty"`
	Bedrooms        int                    `json:"bedrooms,omitempty"`
	Beds            int                    `json:"beds,omitempty"`
	Bathrooms       int                    `json:"bathrooms,omitempty"`
	Baths           int                    `json:"baths,omitempty"`
	Sqft            float64                `json:"sqft,omitempty"`
	LandSize        string                 `json:"land_size,omitempty"`
	YearBuilt       int                    `json:"year_built,omitempty"`
	Furnishing      string                 `json:"furnishing,omitempty"`
	PropertyStatus  string                 `json:"property_status,omitempty"`
	PropertyAge     string                 `json:"property_age,omitempty"`
	Floor           int                    `json:"floor,omitempty"`
	TotalFloors     int                    `json:"total_floors,omitempty"`
	Facing          string                 `json:"facing,omitempty"`
	ParkingSpaces   int                    `json:"parking_spaces,omitempty"`
	PropertyType    string                 `json:"property_type,omitempty"`
	Status          models.PropertyStatus  `json:"status,omitempty"`
	Featured        bool                   `json:"featured,omitempty"`
	Amenities       []string               `json:"amenities,omitempty"`
	Features        []string               `json:"features,omitempty"`
	NearbyLandmarks []string               `json:"nearby_landmarks,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
	Images          []PropertyImageInput   `json:"images,omitempty"`
}

// UpdatePropertyRequest is partial: only supplied fields are written.
// Images is a pointer so "not sent" and "replace with empty set" stay
// distinguishable; when present the full set is replaced, never merged.
type UpdatePropertyRequest struct {
	Title           string                 `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description     *string                `json:"description,omitempty"`
	Price           interface{}            `json:"price,omitempty"`
	Location        *string                `json:"location,omitempty"`
	Bedrooms        *int                   `json:"bedrooms,omitempty"`
	Beds            *int                   `json:"beds,omitempty"`
	Bathrooms       *int                   `json:"bathrooms,omitempty"`
	Baths           *int                   `json:"baths,omitempty"`
	Sqft            *float64               `json:"sqft,omitempty"`
	LandSize        *string                `json:"land_size,omitempty"`
	YearBuilt       *int                   `json:"year_built,omitempty"`
	Furnishing      *string                `json:"furnishing,omitempty"`
	PropertyStatus  *string                `json:"property_status,omitempty"`
	PropertyAge     *string                `json:"property_age,omitempty"`
	Floor           *int                   `json:"floor,omitempty"`
	TotalFloors     *int                   `json:"total_floors,omitempty"`
	Facing          *string                `json:"facing,omitempty"`
	ParkingSpaces   *int                   `json:"parking_spaces,omitempty"`
	PropertyType    *string                `json:"property_type,omitempty"`
	Status          *models.PropertyStatus `json:"status,omitempty"`
	Featured        *bool                  `json:"featured,omitempty"`
	Amenities       []string               `json:"amenities,omitempty"`
	Features        []string               `json:"features,omitempty"`
	NearbyLandmarks []string               `json:"nearby_landmarks,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
	Images          *[]PropertyImageInput  `json:"images,omitempty"`
}

func NewPropertyService(db *gorm.DB, listingCache *cache.Cache) *PropertyService {
	return &PropertyService{
		db:    db,
		cache: listingCache,
	}
}

func (s *PropertyService) ListProperties(ctx context.Context, filters PropertyFilters) ([]*NormalizedProperty, int64, error) {
	type cached struct {
		Items []*NormalizedProperty `json:"items"`
		Total int64                 `json:"total"`
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.ListingKey(ctx, filters.CacheParams())
		var hit cached
		if ok, err := s.cache.Get(ctx, cacheKey, &hit); err == nil && ok {
			return hit.Items, hit.Total, nil
		}
	}

	query := s.applyFilters(s.db.Model(&models.Property{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, filters.PaginationParams)

	var rows []models.Property
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}

	if err := s.attachImages(rows); err != nil {
		return nil, 0, err
	}

	results := make([]*NormalizedProperty, 0, len(rows))
	for i := range rows {
		results = append(results, NormalizeProperty(&rows[i]))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, cached{Items: results, Total: total}); err != nil {
			logrus.WithError(err).Warn("Failed to cache listing response")
		}
	}

	return results, total, nil
}

// GetProperty returns (nil, nil) when the id does not exist: absence is
// a normal outcome for this lookup, not a failure.
func (s *PropertyService) GetProperty(id uuid.UUID) (*NormalizedProperty, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Where("property_id = ?", id).
		Order("image_order ASC").
		Find(&property.Images).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch images: %w", err)
	}

	return NormalizeProperty(&property), nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, req *CreatePropertyRequest) (*NormalizedProperty, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	price, err := ParsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		Title:         req.Title,
		Description:   req.Description,
		Price:         price,
		Location:      req.Location,
		Bedrooms:      pickInt(req.Bedrooms, req.Beds),
		Bathrooms:     pickInt(req.Bathrooms, req.Baths),
		Sqft:          req.Sqft,
		LandSize:      req.LandSize,
		YearBuilt:     req.YearBuilt,
		Furnishing:    req.Furnishing,
		PropertyStat:  req.PropertyStatus,
		PropertyAge:   req.PropertyAge,
		Floor:         req.Floor,
		TotalFloors:   req.TotalFloors,
		Facing:        req.Facing,
		ParkingSpaces: req.ParkingSpaces,
		PropertyType:  req.PropertyType,
		Status:        req.Status,
		Featured:      req.Featured,
		Amenities:     emptyIfNil(req.Amenities),
		Features:      emptyIfNil(req.Features),
		Landmarks:     emptyIfNil(req.NearbyLandmarks),
		Details:       buildDetailsBag(req.Details, req.Amenities, req.Features, req.NearbyLandmarks),
	}

	if property.Status == "" {
		property.Status = models.PropertyStatusAvailable
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if property.Featured {
			if err := checkFeaturedCap(tx, uuid.Nil); err != nil {
				return err
			}
		}

		if err := tx.Create(property).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}

		return insertImages(tx, property.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	return s.GetProperty(property.ID)
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req *UpdatePropertyRequest) (*NormalizedProperty, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var price *int64
	if req.Price != nil {
		parsed, err := ParsePrice(req.Price)
		if err != nil {
			return nil, err
		}
		price = &parsed
	}

	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := buildPropertyUpdates(&property, req, price)

		if featured, ok := updates["featured"].(bool); ok && featured && !property.Featured {
			if err := checkFeaturedCap(tx, property.ID); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&property).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update property: %w", err)
			}
		}

		// Replace-not-merge: the caller's list is the whole new set.
		if req.Images != nil {
			if err := tx.Where("property_id = ?", id).Delete(&models.Image{}).Error; err != nil {
				return fmt.Errorf("failed to clear images: %w", err)
			}
			if err := insertImages(tx, id, *req.Images); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	s.invalidateListings(ctx)

	return s.GetProperty(id)
}

// DeleteProperty removes the property and its owned images in one
// transaction. Zero rows affected is a valid, reported outcome; a second
// delete of the same id returns false without error.
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}

		result := tx.Delete(&models.Property{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}

		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.invalidateListings(ctx)
	}

	return deleted, nil
}

// ListFeatured returns the three newest featured properties.
func (s *PropertyService) ListFeatured(ctx context.Context) ([]*NormalizedProperty, error) {
	featured := true
	items, _, err := s.ListProperties(ctx, PropertyFilters{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: maxFeaturedProperties},
		Featured:         &featured,
	})
	return items, err
}

// SetFeatured flags or unflags a property for the homepage rail. The
// cap check and the write share one transaction.
func (s *PropertyService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*NormalizedProperty, error) {
	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		if featured && !property.Featured {
			if err := checkFeaturedCap(tx, property.ID); err != nil {
				return err
			}
		}

		return tx.Model(&property).Update("featured", featured).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	s.invalidateListings(ctx)

	return s.GetProperty(id)
}

type FeatureRequest struct {
	Title  string                 `json:"title" validate:"required,min=1,max=255"`
	Values map[string]interface{} `json:"values,omitempty"`
	Order  int                    `json:"order"`
}

// ListFeatures returns the structured feature rows for a property,
// caller-assigned order ascending.
func (s *PropertyService) ListFeatures(propertyID uuid.UUID) ([]models.PropertyFeature, error) {
	var features []models.PropertyFeature
	if err := s.db.Where("property_id = ?", propertyID).
		Order("feature_order ASC").
		Find(&features).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch features: %w", err)
	}
	return features, nil
}

func (s *PropertyService) AddFeature(propertyID uuid.UUID, req *FeatureRequest) (*models.PropertyFeature, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	feature := &models.PropertyFeature{
		PropertyID: propertyID,
		Title:      req.Title,
		Values:     models.JSONB(req.Values),
		FeatOrder:  req.Order,
	}
	if err := s.db.Create(feature).Error; err != nil {
		return nil, fmt.Errorf("failed to add feature: %w", err)
	}

	return feature, nil
}

func (s *PropertyService) UpdateFeature(featureID uuid.UUID, req *FeatureRequest) (*models.PropertyFeature, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var feature models.PropertyFeature
	if err := s.db.First(&feature, "id = ?", featureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&feature).Updates(map[string]interface{}{
		"title":         req.Title,
		"values":        models.JSONB(req.Values),
		"feature_order": req.Order,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update feature: %w", err)
	}

	return &feature, nil
}

func (s *PropertyService) RemoveFeature(featureID uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.PropertyFeature{}, "id = ?", featureID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete feature: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *PropertyService) applyFilters(query *gorm.DB, filters PropertyFilters) *gorm.DB {
	if filters.Location != "" {
		term := "%" + strings.ToLower(filters.Location) + "%"
		query = query.Where("LOWER(location) LIKE ? OR LOWER(title) LIKE ?", term, term)
	}

	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}

	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}

	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}

	if filters.MinBeds != nil {
		query = query.Where("bedrooms >= ?", *filters.MinBeds)
	}

	if filters.MinBaths != nil {
		query = query.Where("bathrooms >= ?", *filters.MinBaths)
	}

	if filters.MinParking != nil {
		query = query.Where("parking_spaces >= ?", *filters.MinParking)
	}

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}

	return query
}

// attachImages loads the images for a page of properties in one batched
// query instead of one query per row, grouped by owner and ordered by
// the stored order field.
func (s *PropertyService) attachImages(rows []models.Property) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	var images []models.Image
	if err := s.db.Where("property_id IN ?", ids).
		Order("image_order ASC").
		Find(&images).Error; err != nil {
		return fmt.Errorf("failed to fetch images: %w", err)
	}

	grouped := make(map[uuid.UUID][]models.Image, len(rows))
	for _, img := range images {
		grouped[img.PropertyID] = append(grouped[img.PropertyID], img)
	}

	for i := range rows {
		rows[i].Images = grouped[rows[i].ID]
	}

	return nil
}

func (s *PropertyService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListings(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate listing cache")
	}
}

// CacheParams flattens the filter set into the string map the cache key
// builder hashes.
func (f PropertyFilters) CacheParams() map[string]string {
	params := map[string]string{
		"page":  fmt.Sprintf("%d", f.Page),
		"limit": fmt.Sprintf("%d", f.Limit),
	}
	if f.Location != "" {
		params["location"] = strings.ToLower(f.Location)
	}
	if f.PropertyType != "" {
		params["type"] = f.PropertyType
	}
	if f.MinPrice != nil {
		params["min_price"] = fmt.Sprintf("%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		params["max_price"] = fmt.Sprintf("%d", *f.MaxPrice)
	}
	if f.MinBeds != nil {
		params["min_beds"] = fmt.Sprintf("%d", *f.MinBeds)
	}
	if f.MinBaths != nil {
		params["min_baths"] = fmt.Sprintf("%d", *f.MinBaths)
	}
	if f.MinParking != nil {
		params["min_parking"] = fmt.Sprintf("%d", *f.MinParking)
	}
	if f.Status != nil {
		params["status"] = string(*f.Status)
	}
	if f.Featured != nil {
		params["featured"] = fmt.Sprintf("%t", *f.Featured)
	}
	return params
}

func checkFeaturedCap(tx *gorm.DB, excludeID uuid.UUID) error {
	var count int64
	query := tx.Model(&models.Property{}).Where("featured = ?", true)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count featured properties: %w", err)
	}
	if count >= maxFeaturedProperties {
		return ErrFeaturedCapReached
	}
	return nil
}

func insertImages(tx *gorm.DB, propertyID uuid.UUID, inputs []PropertyImageInput) error {
	for _, input := range inputs {
		imageType := input.ImageType
		if imageType == "" {
			imageType = models.ImageTypeProperty
		}
		image := &models.Image{
			PropertyID: propertyID,
			URL:        input.URL,
			AltText:    input.AltText,
			ImageOrder: input.Order,
			ImageType:  imageType,
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}
	}
	return nil
}

// buildDetailsBag writes the canonical snake_case keys into the bag so
// the array columns and the bag stay consistent for both read paths.
func buildDetailsBag(details map[string]interface{}, amenities, features, landmarks []string) models.JSONB {
	bag := models.JSONB{}
	for k, v := range details {
		bag[k] = v
	}
	if amenities != nil {
		bag["amenities"] = amenities
	}
	if features != nil {
		bag["features"] = features
	}
	if landmarks != nil {
		bag["nearby_landmarks"] = landmarks
	}
	return bag
}

func buildPropertyUpdates(property *models.Property, req *UpdatePropertyRequest, price *int64) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if price != nil {
		updates["price"] = *price
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if beds := pickIntPtr(req.Bedrooms, req.Beds); beds != nil {
		updates["bedrooms"] = *beds
	}
	if baths := pickIntPtr(req.Bathrooms, req.Baths); baths != nil {
		updates["bathrooms"] = *baths
	}
	if req.Sqft != nil {
		updates["sqft"] = *req.Sqft
	}
	if req.LandSize != nil {
		updates["land_size"] = *req.LandSize
	}
	if req.YearBuilt != nil {
		updates["year_built"] = *req.YearBuilt
	}
	if req.Furnishing != nil {
		updates["furnishing"] = *req.Furnishing
	}
	if req.PropertyStatus != nil {
		updates["property_status"] = *req.PropertyStatus
	}
	if req.PropertyAge != nil {
		updates["property_age"] = *req.PropertyAge
	}
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}
	if req.TotalFloors != nil {
		updates["total_floors"] = *req.TotalFloors
	}
	if req.Facing != nil {
		updates["facing"] = *req.Facing
	}
	if req.ParkingSpaces != nil {
		updates["parking_spaces"] = *req.ParkingSpaces
	}
	if req.PropertyType != nil {
		updates["property_type"] = *req.PropertyType
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	// List attributes always land in both stores.
	bag := property.Details
	if bag == nil {
		bag = models.JSONB{}
	}
	bagChanged := false
	for k, v := range req.Details {
		bag[k] = v
		bagChanged = true
	}
	if req.Amenities != nil {
		updates["amenities"] = pq.StringArray(req.Amenities)
		bag["amenities"] = req.Amenities
		bagChanged = true
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(req.Features)
		bag["features"] = req.Features
		bagChanged = true
	}
	if req.NearbyLandmarks != nil {
		updates["nearby_landmarks"] = pq.StringArray(req.NearbyLandmarks)
		bag["nearby_landmarks"] = req.NearbyLandmarks
		bagChanged = true
	}
	if bagChanged {
		updates["details"] = bag
	}

	return updates
}

func pickInt(primary, legacy int) int {
	if primary != 0 {
		return primary
	}
	return legacy
}

func pickIntPtr(primary, legacy *int) *int {
	if primary != nil {
		return primary
	}
	return legacy
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
