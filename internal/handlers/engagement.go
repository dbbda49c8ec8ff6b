// internal/handlers/engagement.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/makaohomes/makao-backend/internal/i18n"
	"github.com/makaohomes/makao-backend/internal/services"
	"github.com/makaohomes/makao-backend/internal/utils"
)

// EngagementHandler covers the visitor-facing interaction surface:
// inquiries, reviews, bookings, and favorites.
type EngagementHandler struct {
	inquiryService     *services.InquiryService
	reviewService      *services.ReviewService
	appointmentService *services.AppointmentService
	favoriteService    *services.FavoriteService
	searchService      *services.SearchService
}

func NewEngagementHandler(
	inquiryService *services.InquiryService,
	reviewService *services.ReviewService,
	appointmentService *services.AppointmentService,
	favoriteService *services.FavoriteService,
	searchService *services.SearchService,
) *EngagementHandler {
	return &EngagementHandler{
		inquiryService:     inquiryService,
		reviewService:      reviewService,
		appointmentService: appointmentService,
		favoriteService:    favoriteService,
		searchService:      searchService,
	}
}

// POST /inquiries
func (h *EngagementHandler) CreateInquiry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	inquiry, err := h.inquiryService.CreateInquiry(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInquirySubmitted),
		"inquiry": inquiry,
	})
}

// POST /reviews
func (h *EngagementHandler) SubmitReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.SubmitReview(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewSubmitted),
		"review":  review,
	})
}

// POST /appointments
func (h *EngagementHandler) BookAppointment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyAppointmentBooked),
		"appointment": appointment,
	})
}

// POST /viewings
func (h *EngagementHandler) BookViewing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	viewing, err := h.appointmentService.CreateViewing(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyViewingBooked),
		"viewing": viewing,
	})
}

// GET /me/appointments
func (h *EngagementHandler) MyAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	appointments, total, err := h.appointmentService.ListAppointments(params, &userID, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(appointments, total, params))
}

// GET /me/viewings
func (h *EngagementHandler) MyViewings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	viewings, total, err := h.appointmentService.ListViewings(params, &userID, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(viewings, total, params))
}

// GET /me/favorites
func (h *EngagementHandler) MyFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	favorites, total, err := h.favoriteService.ListFavorites(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(favorites, total, params))
}

// PUT /me/favorites/:propertyId
func (h *EngagementHandler) AddFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	favorite, err := h.favoriteService.AddFavorite(userID, propertyID)
	if err != nil {
		if err.Error() == "property not found" {
			utils.NotFoundResponse(c, "property")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFavoriteSaved),
		"favorite": favorite,
	})
}

// DELETE /me/favorites/:propertyId
func (h *EngagementHandler) RemoveFavorite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	removed, err := h.favoriteService.RemoveFavorite(userID, propertyID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !removed {
		utils.NotFoundResponse(c, "favorite")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFavoriteRemoved),
	})
}

// GET /me/searches
func (h *EngagementHandler) MySearches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	searches, err := h.searchService.ListSearches(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, searches)
}

// POST /me/searches
func (h *EngagementHandler) SaveSearch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	search, err := h.searchService.SaveSearch(userID, req)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, search)
}

// DELETE /me/searches/:id
func (h *EngagementHandler) DeleteSearch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	searchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.searchService.DeleteSearch(userID, searchID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "saved search")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /me/alerts
func (h *EngagementHandler) MyAlerts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	alerts, err := h.searchService.ListAlerts(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, alerts)
}

// POST /me/alerts
func (h *EngagementHandler) CreateAlert(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	alert, err := h.searchService.CreateAlert(userID, req)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, alert)
}

// PUT /me/alerts/:id
func (h *EngagementHandler) UpdateAlert(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	alert, err := h.searchService.UpdateAlert(userID, alertID, req)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if alert == nil {
		utils.NotFoundResponse(c, "alert")
		return
	}

	utils.SuccessResponse(c, alert)
}

// DELETE /me/alerts/:id
func (h *EngagementHandler) DeleteAlert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.searchService.DeleteAlert(userID, alertID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "alert")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
