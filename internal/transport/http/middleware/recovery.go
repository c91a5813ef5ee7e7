package middleware

import (
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "rizal-api/internal/transport/http/response"
)

// Recovery panic 交给 zap 记录堆栈，客户端只拿到 500
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(resp.CodeServerError, resp.Error(resp.CodeServerError, "internal error"))
	})
}
