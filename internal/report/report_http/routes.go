package report_http

import (
	"go-employee-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	reports := r.Group("/reports")
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("/summary", middleware.RateLimitByIP(10, 30), handler.Summary)
		reports.GET("/breakdown", middleware.RateLimitByIP(10, 30), handler.Breakdown)
		reports.GET("/growth", middleware.RateLimitByIP(10, 30), handler.Growth)

		// file downloads
		reports.GET("/breakdown.csv", middleware.RateLimitByIP(1, 3), handler.BreakdownCSV)
		reports.GET("/employees.pdf", middleware.RateLimitByIP(1, 3), handler.DirectoryPDF)
	}

	r.GET("/dashboard",
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(10, 30),
		handler.Dashboard,
	)

	r.GET("/documents",
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(10, 30),
		handler.Documents,
	)
}
