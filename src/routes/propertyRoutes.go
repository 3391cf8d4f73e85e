package routes

import (
	"github.com/RealEstate/RealEstate-Backend/src/controllers"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPropertyRoutes(router *gin.Engine, service *services.PropertyService, auth gin.HandlerFunc, m *metrics.Metrics) {
	controller := controllers.NewPropertyController(service, m)

	propertyGroup := router.Group("/properties")
	{
		// Public routes
		propertyGroup.GET("", controller.GetAllProperties)
		propertyGroup.GET("/export", controller.ExportProperties)
		propertyGroup.GET("/:id", controller.GetPropertyByID)
		propertyGroup.GET("/:id/traces", controller.GetPropertyTraces)

		// Protected routes
		propertyGroup.POST("", auth, controller.CreateProperty)
		propertyGroup.POST("/import", auth, controller.ImportProperties)
		propertyGroup.PUT("/:id", auth, controller.UpdateProperty)
		propertyGroup.PUT("/:id/price", auth, controller.ChangePropertyPrice)
		propertyGroup.DELETE("/:id", auth, controller.DeleteProperty)
		propertyGroup.POST("/:id/images", auth, controller.AddPropertyImage)
		propertyGroup.POST("/:id/traces", auth, controller.AddPropertyTrace)
	}
}
