package routes

import (
	"net/netip"

	"github.com/gin-gonic/gin"

	"github.com/godwish/build-portal/api/rest/server"
	v1 "github.com/godwish/build-portal/api/rest/v1"
	"github.com/godwish/build-portal/api/rest/v1/handlers"
	"github.com/godwish/build-portal/api/rest/v1/middleware"
	"github.com/godwish/build-portal/internal/services"
)

// Deps carries everything route registration needs.
type Deps struct {
	Builds          services.BuildService
	Ingest          services.IngestService
	AppTitle        string
	UploadDir       string
	TrustedNetworks []netip.Prefix
}

// @Summary Get portal configuration
// @Description Returns the configuration surfaced to the browser UI
// @Tags Config
// @Produce json
// @Success 200 {object} schemas.ConfigResponse
// @Router /config [get]
func configRoutes(deps Deps, router gin.IRoutes) {
	configHandler := handlers.NewConfigHandler(deps.AppTitle)
	router.GET("/config", v1.ErrorHandler(configHandler.HandleGetConfig))
}

func RegisterRoutes(srv *server.Server, deps Deps) {
	internalOnly := middleware.InternalOnly(deps.TrustedNetworks)

	api := srv.Engine.Group("/api")
	configRoutes(deps, api)
	buildRoutes(deps, internalOnly, api)
	uploadRoutes(deps, internalOnly, api)
}
