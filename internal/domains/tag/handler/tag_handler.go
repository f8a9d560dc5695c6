package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finpress-backend/internal/domains/content"
	"finpress-backend/internal/domains/tag"
	"finpress-backend/internal/shared/response"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// Create handles POST /tags.
func (h *TagHandler) Create(c *gin.Context) {
	var req tag.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case err == tag.ErrTagAlreadyExists:
			response.ErrorResponse(c, http.StatusConflict, "CONFLICT", "Tag already exists")
		case content.IsValidationError(err):
			response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create tag")
		}
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// List handles GET /tags.
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// GetBySlug handles GET /tags/:slug.
func (h *TagHandler) GetBySlug(c *gin.Context) {
	result, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err == tag.ErrTagNotFound {
		response.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Tag not found")
		return
	}
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load tag")
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetPopular handles GET /tags/popular.
func (h *TagHandler) GetPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	tags, err := h.service.GetPopular(c.Request.Context(), limit)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load popular tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Delete handles DELETE /tags/:id.
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid tag id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == tag.ErrTagNotFound {
			response.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Tag not found")
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete tag")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
