// internal/handlers/blog.go
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

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// GET /blog
func (h *BlogHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.blogService.ListPosts(params, isAdmin(c), c.Query("tag"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(posts, total, params))
}

// GET /blog/:slug
func (h *BlogHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.blogService.GetPostBySlug(c.Param("slug"), isAdmin(c))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if post == nil {
		utils.NotFoundResponse(c, "blog")
		return
	}
	utils.SuccessResponse(c, post)
}

// POST /admin/blog
func (h *BlogHandler) CreatePost(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	authorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	post, err := h.blogService.CreatePost(authorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBlogPostCreated),
		"post":    post,
	})
}

// PUT /admin/blog/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	post, err := h.blogService.UpdatePost(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if post == nil {
		utils.NotFoundResponse(c, "blog")
		return
	}

	utils.SuccessResponse(c, post)
}

// PATCH /admin/blog/:id/status
func (h *BlogHandler) UpdatePostStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		Status models.BlogStatus `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	post, err := h.blogService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrIllegalStatusTransition) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStatusTransitionInvalid))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	if post == nil {
		utils.NotFoundResponse(c, "blog")
		return
	}

	utils.SuccessResponse(c, post)
}

// DELETE /admin/blog/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	deleted, err := h.blogService.DeletePost(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, "blog")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
