package routes

import (
	"github.com/RealEstate/RealEstate-Backend/src/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupHealthRoutes(router *gin.Engine, db *gorm.DB) {
	controller := controllers.NewHealthController(db)
	router.GET("/health", controller.Health)
}

// SetupMetricsRoutes exposes the collectors of gatherer at /metrics
func SetupMetricsRoutes(router *gin.Engine, gatherer prometheus.Gatherer) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
