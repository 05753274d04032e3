package auth

import (
	"go-employee-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, sessions middleware.SessionAuthenticator, logger *zap.Logger) {
	requireSession := middleware.SessionMiddleware(sessions, SessionCookie)
	reqLogger := middleware.ContextLogger(logger)

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), reqLogger, handler.Login)
		auth.POST("/logout", requireSession, reqLogger, handler.Logout)
		auth.GET("/me", requireSession, middleware.RateLimitBySession(2, 5), reqLogger, handler.Me)
	}

	profile := r.Group("/profile", requireSession, reqLogger)
	{
		profile.GET("", handler.Me)
		profile.PUT("", middleware.RateLimitBySession(1, 3), handler.UpdateProfile)
	}
}
