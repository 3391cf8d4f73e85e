package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/db"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(gdb *gorm.DB) *HealthController {
	return &HealthController{db: gdb}
}

// Health reports liveness and database reachability
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if err := db.Ping(ctx, hc.db); err != nil {
		logger.FromContext(c.Request.Context()).Error("Database ping error", zap.Error(err))
		response["status"] = "error"
		response["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["database"] = "ok"
	c.JSON(http.StatusOK, response)
}
