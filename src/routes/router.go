package routes

import (
	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/RealEstate/RealEstate-Backend/src/controllers"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/middleware"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	DB         *gorm.DB
	Owners     *services.OwnerService
	Properties *services.PropertyService
	Auth       *services.AuthService
	Tokens     *services.TokenService
	// Metrics and Gatherer are nil when metrics are disabled
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter wires middleware and every route group
func NewRouter(cfg config.ServerConfig, deps Dependencies) (*gin.Engine, error) {
	if err := controllers.RegisterValidations(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.SetupCORS(cfg.CORSOrigins))
	}
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	auth := middleware.AuthMiddleware(deps.Tokens)

	SetupAuthRoutes(router, deps.Auth, deps.Tokens, deps.Metrics)
	SetupOwnerRoutes(router, deps.Owners, auth, deps.Metrics)
	SetupPropertyRoutes(router, deps.Properties, auth, deps.Metrics)
	SetupHealthRoutes(router, deps.DB)
	if deps.Gatherer != nil {
		SetupMetricsRoutes(router, deps.Gatherer)
	}

	return router, nil
}
