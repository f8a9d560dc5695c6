package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finpress-backend/internal/domains/analysis"
	"finpress-backend/internal/shared/middleware"
	"finpress-backend/internal/shared/response"
)

type AnalysisHandler struct {
	service analysis.Service
}

func NewAnalysisHandler(service analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Create handles POST /analysis. The author is the authenticated caller.
func (h *AnalysisHandler) Create(c *gin.Context) {
	authorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req analysis.CreateAnalysisRequest
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

// Update handles PATCH /analysis/:id.
func (h *AnalysisHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req analysis.UpdateAnalysisRequest
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

// GetBySlug handles GET /analysis/:slug.
func (h *AnalysisHandler) GetBySlug(c *gin.Context) {
	result, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// List handles GET /analysis.
func (h *AnalysisHandler) List(c *gin.Context) {
	var query analysis.ListAnalysisQuery
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

// GetFeatured handles GET /analysis/featured.
func (h *AnalysisHandler) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.service.GetFeatured(c.Request.Context(), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetLatestByTicker handles GET /analysis/stock/:ticker.
func (h *AnalysisHandler) GetLatestByTicker(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.service.GetLatestByTicker(c.Request.Context(), c.Param("ticker"), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SubmitForReview handles POST /analysis/:id/submit.
func (h *AnalysisHandler) SubmitForReview(c *gin.Context) {
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

// Publish handles POST /analysis/:id/publish.
func (h *AnalysisHandler) Publish(c *gin.Context) {
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

// Feature handles POST /analysis/:id/feature.
func (h *AnalysisHandler) Feature(c *gin.Context) {
	h.setFeatured(c, true)
}

// Unfeature handles POST /analysis/:id/unfeature.
func (h *AnalysisHandler) Unfeature(c *gin.Context) {
	h.setFeatured(c, false)
}

func (h *AnalysisHandler) setFeatured(c *gin.Context, featured bool) {
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

// Delete handles DELETE /analysis/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
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
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid analysis id")
		return uuid.Nil, false
	}
	return id, true
}

func writeDomainError(c *gin.Context, err error) {
	response.ErrorResponse(c, analysis.GetHTTPStatusCode(err), analysis.ErrorCode(err), err.Error())
}
