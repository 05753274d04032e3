package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-employee-admin/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// serveMetrics exposes /metrics for the background binaries and returns a
// func that shuts the listener down.
func serveMetrics(port string, m *metrics.Metrics, logger *zap.Logger) func() {
	router := gin.New()
	router.GET("/metrics", m.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listener running", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
