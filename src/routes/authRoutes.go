package routes

import (
	"github.com/RealEstate/RealEstate-Backend/src/controllers"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine, auth *services.AuthService, tokens *services.TokenService, m *metrics.Metrics) {
	controller := controllers.NewAuthController(auth, tokens, m)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/token", controller.IssueToken)
	}
}
