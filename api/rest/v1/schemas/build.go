package schemas

import (
	"mime/multipart"

	"github.com/godwish/build-portal/internal/models"
)

// UploadRequest represents the multipart body for both upload endpoints
// @Description Build upload request
type UploadRequest struct {
	File        *multipart.FileHeader `form:"file"`        // Build artifact (zip for web, apk for android)
	Version     string                `form:"version"`     // Free-text version label
	Description string                `form:"description"` // Optional free text
}

// UploadResponse represents the response body for a successful upload
// @Description Build upload response
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"` // Public serve path of the new artifact
}

// BuildListResponse represents one page of builds
// @Description Paginated build listing
type BuildListResponse struct {
	Builds      []models.Build `json:"builds"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	TotalBuilds int64          `json:"totalBuilds"`
}

// DeleteResponse represents the acknowledgment for a delete
// @Description Build deletion response
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ConfigResponse represents the configuration surfaced to the UI
// @Description Portal configuration
type ConfigResponse struct {
	Title string `json:"title"`
}
