package middleware

import (
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID tags every request with an id and stores a logger carrying it in
// the request context. A client supplied id is kept.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}

		ctx.Set(RequestIDKey, requestID)
		ctx.Header(RequestIDHeader, requestID)

		log := logger.GetLogger().With(zap.String(RequestIDKey, requestID))
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context(), log))
		ctx.Next()
	}
}
