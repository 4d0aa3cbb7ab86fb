package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godwish/build-portal/api/rest/v1/schemas"
)

type ConfigHandler struct {
	title string
}

func NewConfigHandler(title string) *ConfigHandler {
	return &ConfigHandler{
		title: title,
	}
}

func (h *ConfigHandler) HandleGetConfig(c *gin.Context) error {
	c.JSON(http.StatusOK, schemas.ConfigResponse{
		Title: h.title,
	})
	return nil
}
