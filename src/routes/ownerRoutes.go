package routes

import (
	"github.com/RealEstate/RealEstate-Backend/src/controllers"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupOwnerRoutes(router *gin.Engine, service *services.OwnerService, auth gin.HandlerFunc, m *metrics.Metrics) {
	controller := controllers.NewOwnerController(service, m)

	ownerGroup := router.Group("/owners")
	{
		// Public routes
		ownerGroup.GET("", controller.GetAllOwners)
		ownerGroup.GET("/:id", controller.GetOwnerByID)

		// Protected routes
		ownerGroup.POST("", auth, controller.CreateOwner)
		ownerGroup.PUT("/:id", auth, controller.UpdateOwner)
		ownerGroup.DELETE("/:id", auth, controller.DeleteOwner)
	}
}
