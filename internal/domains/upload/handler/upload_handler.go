package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finpress-backend/internal/domains/upload"
	"finpress-backend/internal/shared/response"
)

type UploadHandler struct {
	service upload.Service
}

func NewUploadHandler(service upload.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadImage handles POST /uploads/images with a multipart "file" field.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Failed to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Failed to read file")
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// DeleteImage handles DELETE /uploads/images with a key query param.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "Missing key parameter")
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), key); err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete image")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
