package app

import (
	"database/sql"

	"go-employee-admin/internal/auth"
	"go-employee-admin/internal/config"
	"go-employee-admin/internal/department"
	"go-employee-admin/internal/employee"
	"go-employee-admin/internal/metrics"
	"go-employee-admin/internal/middleware"
	"go-employee-admin/internal/report/report_http"
	"go-employee-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	m *metrics.Metrics,
	cfg config.Config,
	withOutbox bool,
) modules {
	logger := zap.L()
	apperror.Init()

	router.Use(middleware.RequestID(), m.Middleware())
	router.GET("/metrics", m.Handler())

	// --- Repositories ---
	outboxRepo := newOutbox(db, withOutbox)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	sessionRepo := auth.NewRepository(rdb)

	// --- Services ---
	departmentService := department.NewServiceWithOutbox(db, departmentRepo, outboxRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	authService := auth.NewService(sessionRepo, employeeService, cfg.Session.Secret, cfg.Session.TTL)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService, m)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	reportHandler := report_http.NewHandler(employeeService, m)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authService, logger)
		employee.RegisterRoutes(api, employeeHandler, rdb, logger)
		department.RegisterRoutes(api, departmentHandler, rdb, logger)
		report_http.RegisterRoutes(api, reportHandler, logger)
	}

	return modules{employees: employeeService, departments: departmentService}
}
