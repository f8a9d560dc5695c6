package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finpress-backend/internal/domains/news"
	"finpress-backend/internal/shared/middleware"
	"finpress-backend/internal/shared/response"
)

type NewsHandler struct {
	service news.Service
}

func NewNewsHandler(service news.Service) *NewsHandler {
	return &NewsHandler{service: service}
}

// Create handles POST /news. The author is the authenticated caller.
func (h *NewsHandler) Create(c *gin.Context) {
	authorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req news.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Update handles PATCH /news/:id.
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req news.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetBySlug handles GET /news/:slug.
func (h *NewsHandler) GetBySlug(c *gin.Context) {
	result, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// List handles GET /news.
func (h *NewsHandler) List(c *gin.Context) {
	var query news.ListNewsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetFeatured handles GET /news/featured.
func (h *NewsHandler) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.service.GetFeatured(c.Request.Context(), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SubmitForReview handles POST /news/:id/submit.
func (h *NewsHandler) SubmitForReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.SubmitForReview(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Publish handles POST /news/:id/publish. The publishing editor is the
// authenticated caller.
func (h *NewsHandler) Publish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	editorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	result, err := h.service.Publish(c.Request.Context(), id, editorID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Unpublish handles POST /news/:id/unpublish.
func (h *NewsHandler) Unpublish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.Unpublish(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Archive handles POST /news/:id/archive.
func (h *NewsHandler) Archive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.Archive(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Feature handles POST /news/:id/feature.
func (h *NewsHandler) Feature(c *gin.Context) {
	h.setFeatured(c, true)
}

// Unfeature handles POST /news/:id/unfeature.
func (h *NewsHandler) Unfeature(c *gin.Context) {
	h.setFeatured(c, false)
}

func (h *NewsHandler) setFeatured(c *gin.Context, featured bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.SetFeatured(c.Request.Context(), id, featured)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /news/:id.
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid article id")
		return uuid.Nil, false
	}
	return id, true
}

func writeDomainError(c *gin.Context, err error) {
	response.ErrorResponse(c, news.GetHTTPStatusCode(err), news.ErrorCode(err), err.Error())
}
