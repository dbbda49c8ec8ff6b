// internal/handlers/property.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/makaohomes/makao-backend/internal/i18n"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/services"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	imageService    *services.ImageService
	reviewService   *services.ReviewService
	notifier        *services.NotificationService
}

func NewPropertyHandler(propertyService *services.PropertyService, imageService *services.ImageService, reviewService *services.ReviewService, notifier *services.NotificationService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		imageService:    imageService,
		reviewService:   reviewService,
		notifier:        notifier,
	}
}

// GET /properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filters := parsePropertyFilters(c)

	properties, total, err := h.propertyService.ListProperties(c.Request.Context(), filters)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(properties, total, filters.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /properties/featured
func (h *PropertyHandler) ListFeatured(c *gin.Context) {
	properties, err := h.propertyService.ListFeatured(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, properties)
}

// GET /properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	property, err := h.propertyService.GetProperty(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if property == nil {
		utils.NotFoundResponse(c, "property")
		return
	}

	response := gin.H{"property": property}
	if h.notifier != nil {
		response["whatsapp_link"] = h.notifier.WhatsAppLink(property.Title)
	}
	utils.SuccessResponse(c, response)
}

// GET /properties/:id/reviews
func (h *PropertyHandler) ListPropertyReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	reviews, err := h.reviewService.ListApproved(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, reviews)
}

// POST /admin/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrice):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPropertyBadPrice), nil)
		case errors.Is(err, services.ErrFeaturedCapReached):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPropertyFeaturedCap, 3))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPropertyCreated),
		"property": property,
	})
}

// PUT /admin/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrice):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPropertyBadPrice), nil)
		case errors.Is(err, services.ErrFeaturedCapReached):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPropertyFeaturedCap, 3))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}
	if property == nil {
		utils.NotFoundResponse(c, "property")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPropertyUpdated),
		"property": property,
	})
}

// DELETE /admin/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.propertyService.DeleteProperty(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "property")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPropertyDeleted),
	})
}

// PATCH /admin/properties/:id/featured
func (h *PropertyHandler) SetFeatured(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	property, err := h.propertyService.SetFeatured(c.Request.Context(), id, req.Featured)
	if err != nil {
		if errors.Is(err, services.ErrFeaturedCapReached) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPropertyFeaturedCap, 3))
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	if property == nil {
		utils.NotFoundResponse(c, "property")
		return
	}

	utils.SuccessResponse(c, property)
}

// POST /admin/properties/:id/images
func (h *PropertyHandler) AttachImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	image, err := h.imageService.AttachPropertyImage(c.Request.Context(), id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if image == nil {
		utils.NotFoundResponse(c, "property")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImageAttached),
		"image":   image,
	})
}

// DELETE /admin/properties/images/:imageId
func (h *PropertyHandler) DetachImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	result, err := h.imageService.DetachPropertyImage(c.Request.Context(), imageID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !result.Deleted {
		utils.NotFoundResponse(c, "image")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImageDetached),
		"result":  result,
	})
}

// GET /properties/:id/features
func (h *PropertyHandler) ListFeatures(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	features, err := h.propertyService.ListFeatures(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, features)
}

// POST /admin/properties/:id/features
func (h *PropertyHandler) AddFeature(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	feature, err := h.propertyService.AddFeature(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if feature == nil {
		utils.NotFoundResponse(c, "property")
		return
	}

	utils.CreatedResponse(c, feature)
}

// PUT /admin/properties/features/:featureId
func (h *PropertyHandler) UpdateFeature(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	featureID, err := uuid.Parse(c.Param("featureId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	feature, err := h.propertyService.UpdateFeature(featureID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if feature == nil {
		utils.NotFoundResponse(c, "feature")
		return
	}

	utils.SuccessResponse(c, feature)
}

// DELETE /admin/properties/features/:featureId
func (h *PropertyHandler) RemoveFeature(c *gin.Context) {
	featureID, err := uuid.Parse(c.Param("featureId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.propertyService.RemoveFeature(featureID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "feature")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// parsePropertyFilters reads listing filters from the query string,
// accepting the legacy parameter names alongside the canonical ones.
func parsePropertyFilters(c *gin.Context) services.PropertyFilters {
	filters := services.PropertyFilters{
		PaginationParams: utils.GetPaginationParams(c),
		Location:         c.Query("location"),
		PropertyType:     firstQuery(c, "property_type", "type"),
	}

	if v := firstQuery(c, "min_price", "minPrice"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MinPrice = &parsed
		}
	}
	if v := firstQuery(c, "max_price", "maxPrice"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MaxPrice = &parsed
		}
	}
	if v := firstQuery(c, "min_beds", "beds", "bedrooms"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.MinBeds = &parsed
		}
	}
	if v := firstQuery(c, "min_baths", "baths", "bathrooms"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.MinBaths = &parsed
		}
	}
	if v := firstQuery(c, "min_parking", "parking"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.MinParking = &parsed
		}
	}
	if v := c.Query("status"); v != "" {
		status := models.PropertyStatus(v)
		filters.Status = &status
	}
	if v := c.Query("featured"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			filters.Featured = &parsed
		}
	}

	return filters
}

func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.Query(name); v != "" {
			return v
		}
	}
	return ""
}
