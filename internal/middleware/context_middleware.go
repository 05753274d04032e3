package middleware

import (
	"go-employee-admin/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger puts a logger tagged with the request id (and the signed-in
// employee, when there is one) on the request context.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
		}
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		ctx = contextutil.WithRequestID(ctx, rid)
		md := contextutil.ExtractMetadata(ctx)

		fields := []zap.Field{zap.String("request_id", md.RequestID)}
		if md.EmployeeID != 0 {
			fields = append(fields, zap.Int64("employee_id", md.EmployeeID))
		}
		ctx = contextutil.WithLogger(ctx, logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
