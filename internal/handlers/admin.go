// internal/handlers/admin.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/makaohomes/makao-backend/internal/i18n"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/services"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type AdminHandler struct {
	adminService       *services.AdminService
	userService        *services.UserService
	inquiryService     *services.InquiryService
	reviewService      *services.ReviewService
	appointmentService *services.AppointmentService
	storageService     *services.StorageService
}

func NewAdminHandler(
	adminService *services.AdminService,
	userService *services.UserService,
	inquiryService *services.InquiryService,
	reviewService *services.ReviewService,
	appointmentService *services.AppointmentService,
	storageService *services.StorageService,
) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		userService:        userService,
		inquiryService:     inquiryService,
		reviewService:      reviewService,
		appointmentService: appointmentService,
		storageService:     storageService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /admin/activity
func (h *AdminHandler) GetActivityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.adminService.ListActivityLogs(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, logs)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if user == nil {
		utils.NotFoundResponse(c, "user")
		return
	}
	utils.SuccessResponse(c, user)
}

// POST /admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, user)
}

// PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if user == nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.userService.DeleteUser(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}

// GET /admin/inquiries
func (h *AdminHandler) ListInquiries(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	inquiries, total, err := h.inquiryService.ListInquiries(params, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(inquiries, total, params))
}

// PUT /admin/inquiries/:id
func (h *AdminHandler) UpdateInquiry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	inquiry, err := h.inquiryService.UpdateInquiry(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if inquiry == nil {
		utils.NotFoundResponse(c, "inquiry")
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// DELETE /admin/inquiries/:id
func (h *AdminHandler) DeleteInquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.inquiryService.DeleteInquiry(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "inquiry")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /admin/reviews
func (h *AdminHandler) ListReviews(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.ListAll(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(reviews, total, params))
}

// PATCH /admin/reviews/:id/status
func (h *AdminHandler) ModerateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		Status models.ReviewStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	review, err := h.reviewService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if review == nil {
		utils.NotFoundResponse(c, "review")
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /admin/reviews/:id
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.reviewService.DeleteReview(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "review")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /admin/appointments
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	appointments, total, err := h.appointmentService.ListAppointments(params, nil, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(appointments, total, params))
}

// PUT /admin/appointments/:id
func (h *AdminHandler) UpdateAppointment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if appointment == nil {
		utils.NotFoundResponse(c, "appointment")
		return
	}

	utils.SuccessResponse(c, appointment)
}

// GET /admin/viewings
func (h *AdminHandler) ListViewings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	viewings, total, err := h.appointmentService.ListViewings(params, nil, c.Query("status"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(viewings, total, params))
}

// PUT /admin/viewings/:id
func (h *AdminHandler) UpdateViewing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	viewing, err := h.appointmentService.UpdateViewing(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if viewing == nil {
		utils.NotFoundResponse(c, "viewing")
		return
	}

	utils.SuccessResponse(c, viewing)
}

// POST /admin/uploads
func (h *AdminHandler) UploadFile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	category := c.DefaultPostForm("category", "properties")
	options := h.storageService.GetDefaultUploadOptions(category)

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyImageInvalid), err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /admin/uploads/presign?key=...
// Issues a short-lived download URL for objects in non-public folders
// (floor plans, documents) that the bucket does not serve directly.
func (h *AdminHandler) PresignDownload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "key"), nil)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":        url,
		"expires_in": int((15 * time.Minute).Seconds()),
	})
}
