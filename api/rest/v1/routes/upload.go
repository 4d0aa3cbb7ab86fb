package routes

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/godwish/build-portal/api/rest/v1"
	"github.com/godwish/build-portal/api/rest/v1/handlers"
)

// @Summary Upload a web build
// @Description Extracts the zip archive into the artifact store and records the build
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Web build zip archive"
// @Param version formData string false "Version label"
// @Param description formData string false "Description"
// @Success 200 {object} schemas.UploadResponse
// @Failure 400 {object} v1.APIError
// @Failure 403 {object} v1.APIError
// @Failure 500 {object} v1.APIError
// @Router /upload/web [post]
func handleWebUpload(uploadHandler *handlers.UploadHandler, internalOnly gin.HandlerFunc, router gin.IRoutes) {
	router.POST("/upload/web", internalOnly, v1.ErrorHandler(uploadHandler.HandleWebUpload))
}

// @Summary Upload an android build
// @Description Moves the apk into the artifact store and records the build
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Android package"
// @Param version formData string false "Version label"
// @Param description formData string false "Description"
// @Success 200 {object} schemas.UploadResponse
// @Failure 400 {object} v1.APIError
// @Failure 403 {object} v1.APIError
// @Failure 500 {object} v1.APIError
// @Router /upload/android [post]
func handleAndroidUpload(uploadHandler *handlers.UploadHandler, internalOnly gin.HandlerFunc, router gin.IRoutes) {
	router.POST("/upload/android", internalOnly, v1.ErrorHandler(uploadHandler.HandleAndroidUpload))
}

func uploadRoutes(deps Deps, internalOnly gin.HandlerFunc, router gin.IRoutes) {
	uploadHandler := handlers.NewUploadHandler(deps.Ingest, deps.UploadDir)
	handleWebUpload(uploadHandler, internalOnly, router)
	handleAndroidUpload(uploadHandler, internalOnly, router)
}
