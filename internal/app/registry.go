package app

import (
	"context"
	"database/sql"
	"path/filepath"

	"go-presence/internal/alert"
	"go-presence/internal/anomaly"
	"go-presence/internal/auth"
	"go-presence/internal/checkin"
	"go-presence/internal/config"
	"go-presence/internal/employee"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/middleware"
	"go-presence/internal/pair"
	"go-presence/internal/rbac"
	"go-presence/internal/rbac/infra"
	"go-presence/internal/session"
	"go-presence/internal/shared/counter"
	"go-presence/internal/site"
	"go-presence/internal/verification"

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
) error {
	logger := zap.L()
	engineCfg := config.LoadEngine()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	siteRepo := site.NewRepository(gormDB)
	pairRepo := pair.NewRepository(gormDB)
	alertRepo := alert.NewRepository(gormDB)
	checkinRepo := checkin.NewRepository(gormDB)
	sessionRepo := session.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Verification engine ---
	// the static comparator stands in until a biometric vendor is wired
	gate := verification.NewGate(verification.StaticComparator{
		Verified:        true,
		ConfidenceScore: 90,
	})
	detector := anomaly.NewDetector(nil)
	pairCodes := verification.NewRedisPairCodeStore(rdb)

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	siteService := site.NewService(db, siteRepo, rdb)
	pairService := pair.NewService(db, pairRepo)
	alertService := alert.NewServiceWithOutbox(db, alertRepo, outboxRepo)
	sessionService := session.NewService(
		db,
		sessionRepo,
		checkinRepo,
		siteRepo,
		employeeRepo,
		alertRepo,
		alertService,
		pairService,
		gate,
		detector,
		pairCodes,
		outboxRepo,
		engineCfg,
	)

	// --- Re-verification scheduler ---
	scheduler := session.NewTimerScheduler(func(sessionID string) {
		sessionService.HandleVerificationDue(context.Background(), sessionID)
	})
	sessionService.AttachScheduler(scheduler)
	if err := sessionService.RestoreSchedules(context.Background()); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	siteHandler := site.NewHandler(siteService)
	pairHandler := pair.NewHandler(pairService)
	alertHandler := alert.NewHandler(alertService)
	sessionHandler := session.NewHandler(sessionService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		site.RegisterRoutes(api, siteHandler, rbacService, logger)
		pair.RegisterRoutes(api, pairHandler, rbacService, logger)
		alert.RegisterRoutes(api, alertHandler, rbacService, logger)
		session.RegisterRoutes(api, sessionHandler, rbacService, rdb, logger)
	}

	return nil
}
