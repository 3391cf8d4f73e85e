package middleware

import (
	"net/http"
	"strings"

	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	UsernameKey = "username"
	RoleKey     = "role"
)

// AuthMiddleware requires a valid bearer token issued by tokens
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		// Divides the header into Bearer and Token
		scheme, raw, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			logger.FromContext(ctx.Request.Context()).Info("Rejected bearer token", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx.Set(UsernameKey, claims.Subject)
		ctx.Set(RoleKey, claims.Role)

		log := logger.FromContext(ctx.Request.Context()).With(zap.String("username", claims.Subject))
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context(), log))
		ctx.Next()
	}
}
