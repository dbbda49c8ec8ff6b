// internal/handlers/page.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/makaohomes/makao-backend/internal/i18n"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/services"
	"github.com/makaohomes/makao-backend/internal/utils"
)

type PageHandler struct {
	pageService  *services.PageService
	imageService *services.ImageService
}

func NewPageHandler(pageService *services.PageService, imageService *services.ImageService) *PageHandler {
	return &PageHandler{
		pageService:  pageService,
		imageService: imageService,
	}
}

func isAdmin(c *gin.Context) bool {
	role, _ := utils.GetUserRoleFromContext(c)
	return role == string(models.UserRoleAdmin)
}

// GET /pages
func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.pageService.ListPages(isAdmin(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, pages)
}

// GET /pages/:slug
func (h *PageHandler) GetPageBySlug(c *gin.Context) {
	page, err := h.pageService.GetPageBySlug(c.Param("slug"), isAdmin(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if page == nil {
		utils.NotFoundResponse(c, "page")
		return
	}
	utils.SuccessResponse(c, page)
}

// POST /admin/pages
func (h *PageHandler) CreatePage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	page, err := h.pageService.CreatePage(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageCreated),
		"page":    page,
	})
}

// PUT /admin/pages/:id
func (h *PageHandler) UpdatePage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	page, err := h.pageService.UpdatePage(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if page == nil {
		utils.NotFoundResponse(c, "page")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageUpdated),
		"page":    page,
	})
}

// PATCH /admin/pages/:id/status
func (h *PageHandler) UpdatePageStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		Status models.PageStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	page, err := h.pageService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if page == nil {
		utils.NotFoundResponse(c, "page")
		return
	}

	utils.SuccessResponse(c, page)
}

// DELETE /admin/pages/:id
func (h *PageHandler) DeletePage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.pageService.DeletePage(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "page")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageDeleted),
	})
}

// GET /admin/pages/:id/images
func (h *PageHandler) ListContentImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	images, err := h.imageService.ListContentImages(id, c.Query("section"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, images)
}

// POST /admin/pages/:id/images
func (h *PageHandler) AttachContentImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		SectionName string `json:"section_name" validate:"required"`
		services.AttachImageRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	image, err := h.imageService.AttachContentImage(id, req.SectionName, &req.AttachImageRequest)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if image == nil {
		utils.NotFoundResponse(c, "page")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImageAttached),
		"image":   image,
	})
}

// DELETE /admin/pages/images/:imageId
func (h *PageHandler) DetachContentImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	result, err := h.imageService.DetachContentImage(imageID)
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
