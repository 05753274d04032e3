package employee

import (
	"go-employee-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByIP(10, 30),
			handler.GetAll,
		)

		employees.GET("/table",
			middleware.RateLimitByIP(10, 30),
			handler.GetTable,
		)

		employees.GET("/options",
			middleware.RateLimitByIP(20, 40),
			handler.GetOptions,
		)

		employees.GET("/export",
			middleware.RateLimitByIP(1, 3),
			handler.Export,
		)

		employees.GET("/:id",
			middleware.RateLimitByIP(10, 30),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByIP(2, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByIP(2, 5),
			handler.Update,
		)

		// bulk delete fans out one request per selected row
		employees.DELETE("/:id",
			middleware.RateLimitByIP(20, 50),
			handler.Delete,
		)
	}
}
