package controllers

import (
	"net/http"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth    *services.AuthService
	tokens  *services.TokenService
	metrics *metrics.Metrics
}

func NewAuthController(auth *services.AuthService, tokens *services.TokenService, m *metrics.Metrics) *AuthController {
	return &AuthController{auth: auth, tokens: tokens, metrics: m}
}

// IssueToken exchanges a username and password for a bearer token
func (ac *AuthController) IssueToken(c *gin.Context) {
	var req dtos.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	identity, err := ac.auth.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if identity == nil {
		ac.metrics.RecordAuthAttempt(false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := ac.tokens.IssueToken(*identity)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.metrics.RecordAuthAttempt(true)
	c.JSON(http.StatusOK, token)
}
