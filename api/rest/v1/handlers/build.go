package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/godwish/build-portal/api/rest/v1"
	"github.com/godwish/build-portal/api/rest/v1/schemas"
	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/services"
)

type BuildHandler struct {
	service services.BuildService
}

func NewBuildHandler(service services.BuildService) *BuildHandler {
	return &BuildHandler{
		service: service,
	}
}

func (h *BuildHandler) HandleListBuilds(c *gin.Context) error {
	t := c.MustGet("buildType").(models.BuildType)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.List(c.Request.Context(), t, page)
	if err != nil {
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: "Database error",
		}
	}

	c.JSON(http.StatusOK, schemas.BuildListResponse{
		Builds:      result.Builds,
		Page:        result.Page,
		TotalPages:  result.TotalPages,
		TotalBuilds: result.TotalBuilds,
	})
	return nil
}

func (h *BuildHandler) HandleLatestBuild(c *gin.Context) error {
	t := c.MustGet("buildType").(models.BuildType)

	build, err := h.service.Latest(c.Request.Context(), t)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return v1.APIError{
				Code:    http.StatusNotFound,
				Message: "No builds found",
			}
		}
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: "Database error",
		}
	}

	c.JSON(http.StatusOK, build)
	return nil
}

func (h *BuildHandler) HandleDeleteBuild(c *gin.Context) error {
	t := c.MustGet("buildType").(models.BuildType)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return v1.APIError{
			Code:    http.StatusNotFound,
			Message: "Build not found",
		}
	}

	if err := h.service.Delete(c.Request.Context(), t, uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return v1.APIError{
				Code:    http.StatusNotFound,
				Message: "Build not found",
			}
		}
		return v1.APIError{
			Code:    http.StatusInternalServerError,
			Message: "Failed to delete build",
		}
	}

	c.JSON(http.StatusOK, schemas.DeleteResponse{
		Success: true,
		Message: "Build deleted successfully",
	})
	return nil
}
