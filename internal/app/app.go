package app

import (
	"context"
	"database/sql"
	"errors"

	"go-employee-admin/internal/config"
	"go-employee-admin/internal/department"
	"go-employee-admin/internal/employee"
	"go-employee-admin/internal/messaging/kafka"
	"go-employee-admin/internal/metrics"
	"go-employee-admin/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const devSessionSecret = "dev-only-session-secret"

// BuildApp connects the stores, migrates and seeds them, and registers every
// route on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		logger.Warn("JWT_SECRET not set, using development secret")
		cfg.Session.Secret = devSessionSecret
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	withOutbox := outboxEnabled(cfg)
	if err := migrate(gormDB, withOutbox); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("database migrated", zap.Bool("outbox", withOutbox))

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	m := metrics.New("employee_admin")
	mods := registerModules(router, sqlDB, gormDB, rdb, m, cfg, withOutbox)

	if cfg.Seed {
		if err := seedDefaults(context.Background(), mods.departments, mods.employees, logger); err != nil {
			cleanup()
			return nil, err
		}
	}

	return cleanup, nil
}

// outboxEnabled reports whether mutations should queue lifecycle events.
// The outbox queries are PostgreSQL only.
func outboxEnabled(cfg config.Config) bool {
	return cfg.Kafka.Broker != "" && cfg.Database.Driver != "sqlite"
}

func migrate(db *gorm.DB, withOutbox bool) error {
	if err := db.AutoMigrate(&department.Department{}, &employee.Employee{}); err != nil {
		return err
	}
	if withOutbox {
		return kafka.Migrate(db)
	}
	return nil
}

type modules struct {
	employees   employee.Service
	departments department.Service
}

func newOutbox(db *sql.DB, enabled bool) kafka.OutboxRepository {
	if !enabled {
		return nil
	}
	return kafka.NewOutboxRepository(db)
}
