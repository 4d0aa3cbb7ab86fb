package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/godwish/build-portal/api/rest/v1"
	"github.com/godwish/build-portal/api/rest/v1/schemas"
	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/services"
)

type UploadHandler struct {
	service   services.IngestService
	uploadDir string
}

func NewUploadHandler(service services.IngestService, uploadDir string) *UploadHandler {
	return &UploadHandler{
		service:   service,
		uploadDir: uploadDir,
	}
}

func (h *UploadHandler) HandleWebUpload(c *gin.Context) error {
	return h.handleUpload(c, models.BuildTypeWeb, "Web build uploaded successfully", "Failed to process web build")
}

func (h *UploadHandler) HandleAndroidUpload(c *gin.Context) error {
	return h.handleUpload(c, models.BuildTypeAndroid, "Android build uploaded successfully", "Failed to process android build")
}

func (h *UploadHandler) handleUpload(c *gin.Context, t models.BuildType, okMsg, failMsg string) error {
	var req schemas.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		return v1.APIError{
			Code:    http.StatusBadRequest,
			Message: "Bad Request",
		}
	}
	if req.File == nil {
		return v1.APIError{
			Code:    http.StatusBadRequest,
			Message: "No file uploaded",
		}
	}

	// Stage the upload under a random name; the pipeline owns the temp file
	// from here and removes it on every outcome.
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: failMsg,
		}
	}
	tempPath := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(req.File.Filename))
	if err := c.SaveUploadedFile(req.File, tempPath); err != nil {
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: failMsg,
		}
	}

	build, err := h.service.Ingest(c.Request.Context(), t, services.UploadInput{
		TempPath:    tempPath,
		Version:     req.Version,
		Description: req.Description,
	})
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return v1.APIError{
				Code:    http.StatusBadRequest,
				Message: validationErr.Msg,
			}
		}
		// Extraction, move and registry failures all surface as 500.
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: failMsg,
		}
	}

	c.JSON(http.StatusOK, schemas.UploadResponse{
		Success: true,
		Message: okMsg,
		Path:    build.ServePath,
	})
	return nil
}
