package app

import (
	"database/sql"
	"path/filepath"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/authz"
	"go-leavedesk/internal/dashboard"
	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/ledger"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(db)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	enforcer, err := authz.NewEnforcer(
		filepath.Join("internal", "authz", "model.conf"),
		filepath.Join("internal", "authz", "policy.csv"),
	)
	if err != nil {
		return err
	}

	// --- Services ---
	ledgerService := ledger.NewService(ledgerRepo, rdb)
	authService := auth.NewService(db, authRepo, ledgerRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, ledgerService, ledgerRepo, outboxRepo)
	dashboardService := dashboard.NewService(leaveRepo, ledgerService, authRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, ledgerService, rdb)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler, enforcer)
	}

	return nil
}
