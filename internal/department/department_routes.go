package department

import (
	"go-employee-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.GET("", middleware.RateLimitByIP(10, 30), h.GetAll)
		departments.POST("", middleware.RateLimitByIP(2, 5), middleware.Idempotency(rdb), h.Create)
		departments.GET("/:id", middleware.RateLimitByIP(10, 30), h.GetById)
		departments.PUT("/:id", middleware.RateLimitByIP(2, 5), h.Update)
		departments.DELETE("/:id", middleware.RateLimitByIP(2, 5), h.Delete)
	}
}
