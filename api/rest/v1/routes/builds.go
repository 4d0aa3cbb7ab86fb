package routes

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/godwish/build-portal/api/rest/v1"
	"github.com/godwish/build-portal/api/rest/v1/handlers"
	"github.com/godwish/build-portal/api/rest/v1/middleware"
)

// @Summary List builds
// @Description Returns one page of builds for the type, newest first
// @Tags Builds
// @Produce json
// @Param type path string true "Build type" Enums(web, android)
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} schemas.BuildListResponse
// @Failure 400 {object} v1.APIError
// @Failure 500 {object} v1.APIError
// @Router /builds/{type} [get]
func handleListBuilds(buildHandler *handlers.BuildHandler, router gin.IRoutes) {
	router.GET("/builds/:type", middleware.BuildTypeValidator(), v1.ErrorHandler(buildHandler.HandleListBuilds))
}

// @Summary Get latest build
// @Description Returns the most recent build for the type
// @Tags Builds
// @Produce json
// @Param type path string true "Build type" Enums(web, android)
// @Success 200 {object} models.Build
// @Failure 400 {object} v1.APIError
// @Failure 404 {object} v1.APIError
// @Router /builds/{type}/latest [get]
func handleLatestBuild(buildHandler *handlers.BuildHandler, router gin.IRoutes) {
	router.GET("/builds/:type/latest", middleware.BuildTypeValidator(), v1.ErrorHandler(buildHandler.HandleLatestBuild))
}

// @Summary Delete a build
// @Description Removes the artifact and the registry record together
// @Tags Builds
// @Produce json
// @Param type path string true "Build type" Enums(web, android)
// @Param id path int true "Build id"
// @Success 200 {object} schemas.DeleteResponse
// @Failure 403 {object} v1.APIError
// @Failure 404 {object} v1.APIError
// @Failure 500 {object} v1.APIError
// @Router /builds/{type}/{id} [delete]
func handleDeleteBuild(buildHandler *handlers.BuildHandler, internalOnly gin.HandlerFunc, router gin.IRoutes) {
	router.DELETE("/builds/:type/:id", internalOnly, middleware.BuildTypeValidator(), v1.ErrorHandler(buildHandler.HandleDeleteBuild))
}

func buildRoutes(deps Deps, internalOnly gin.HandlerFunc, router gin.IRoutes) {
	buildHandler := handlers.NewBuildHandler(deps.Builds)
	handleListBuilds(buildHandler, router)
	handleLatestBuild(buildHandler, router)
	handleDeleteBuild(buildHandler, internalOnly, router)
}
