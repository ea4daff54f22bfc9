package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/haneulab/thumbsmith-api/controller"
	middlewares "github.com/haneulab/thumbsmith-api/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.New()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(gin.Logger())
	r.Use(middles.RecoveryMiddleware)
	r.Use(middles.CORSMiddleware)

	r.GET("/healthz", ctrl.HealthCheck)

	apiRoutes := r.Group("/api/v1/thumbnails")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		apiRoutes.POST("/generate", ctrl.GenerateThumbnail)
		apiRoutes.GET("/", ctrl.ListThumbnails)
		apiRoutes.GET("/:id", ctrl.GetThumbnailByID)
	}

	return r
}
