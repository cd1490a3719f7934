package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gapfarm/portal/api/internal/address"
	"github.com/gapfarm/portal/api/internal/auth"
	"github.com/gapfarm/portal/api/internal/config"
	"github.com/gapfarm/portal/api/internal/database"
	"github.com/gapfarm/portal/api/internal/handlers"
	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/repository"
	"github.com/gapfarm/portal/api/internal/services"
	"github.com/gapfarm/portal/api/internal/wizard"
)

const (
	shutdownTimeout = 30 * time.Second
	purgeInterval   = 10 * time.Minute
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting GAP portal API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Load the bundled Thai address reference tree
	addresses, err := address.Load()
	if err != nil {
		log.Fatal("Failed to load address dataset", err, nil)
	}
	log.Info("Address dataset loaded", map[string]interface{}{
		"provinces": len(addresses.Provinces()),
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository layer
	userRepo := repository.NewUserRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	farmRepo := repository.NewFarmRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)

	// Drafts live in memory only; expired entries are purged periodically.
	draftStore := wizard.NewStore(cfg.Drafts.TTL)

	// Initialize service layer
	authService := services.NewAuthService(userRepo, cfg.Auth, log)
	registrationService := services.NewRegistrationService(farmerRepo, userRepo, addresses, draftStore, log)
	farmService := services.NewFarmService(farmRepo, farmerRepo, log)
	inspectionService := services.NewInspectionService(inspectionRepo, farmRepo, farmerRepo, userRepo, log)
	reportService := services.NewReportService(inspectionRepo, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	farmerHandler := handlers.NewFarmerHandler(registrationService)
	draftHandler := handlers.NewDraftHandler(registrationService)
	farmHandler := handlers.NewFarmHandler(farmService)
	detailHandler := handlers.NewPlantingDetailHandler(farmService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	auditorHandler := handlers.NewAuditorHandler(inspectionService)
	addressHandler := handlers.NewAddressHandler(addresses)
	reportHandler := handlers.NewReportHandler(reportService)

	requireAuth := middleware.RequireAuth(cfg.Auth.Secret)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.PUT("/auth/password", requireAuth, authHandler.ChangePassword)

		// Registration is public: accounts do not exist yet.
		v1.POST("/farmers/register", farmerHandler.Register)
		v1.GET("/farmers/:id", requireAuth, farmerHandler.Get)

		drafts := v1.Group("/registration-drafts")
		{
			drafts.POST("", draftHandler.Start)
			drafts.GET("/:id", draftHandler.Get)
			drafts.PUT("/:id/next", draftHandler.Next)
			drafts.PUT("/:id/previous", draftHandler.Previous)
			drafts.PUT("/:id/jump", draftHandler.Jump)
			drafts.POST("/:id/submit", draftHandler.Submit)
		}

		addressRoutes := v1.Group("/addresses")
		{
			addressRoutes.GET("/provinces", addressHandler.Provinces)
			addressRoutes.GET("/provinces/:id/districts", addressHandler.Districts)
			addressRoutes.GET("/districts/:id/subdistricts", addressHandler.Subdistricts)
			addressRoutes.GET("/match", addressHandler.Match)
		}

		farms := v1.Group("/rubber-farms", requireAuth)
		{
			farms.GET("", middleware.RequireRoles(auth.RoleFarmer), farmHandler.List)
			farms.POST("", middleware.RequireRoles(auth.RoleFarmer), farmHandler.Create)
			farms.GET("/:id", farmHandler.Get)
			farms.PUT("/:id", middleware.RequireRoles(auth.RoleFarmer), farmHandler.Update)
		}

		details := v1.Group("/planting-details", requireAuth, middleware.RequireRoles(auth.RoleFarmer))
		{
			details.POST("", detailHandler.Create)
			details.PUT("/:id", detailHandler.Update)
			details.DELETE("/:id", detailHandler.Delete)
		}

		auditorOnly := middleware.RequireRoles(auth.RoleAuditor)
		inspections := v1.Group("/inspections", requireAuth)
		{
			inspections.GET("/types", inspectionHandler.ListTypes)
			inspections.POST("", auditorOnly, inspectionHandler.Schedule)
			inspections.GET("/:id", inspectionHandler.Get)
			inspections.GET("/:id/evaluation", auditorOnly, inspectionHandler.Preview)
			inspections.PUT("/:id", auditorOnly, inspectionHandler.SubmitSummary)
		}
		v1.GET("/inspection-items", requireAuth, inspectionHandler.ListItems)
		v1.PUT("/requirements/:id", requireAuth, auditorOnly, inspectionHandler.RecordEvaluation)

		auditors := v1.Group("/auditors", requireAuth, auditorOnly)
		{
			auditors.GET("/available-farms", auditorHandler.AvailableFarms)
			auditors.GET("/other-auditors", auditorHandler.OtherAuditors)
			auditors.GET("/current", auditorHandler.Current)
		}

		reports := v1.Group("/reports", requireAuth, middleware.RequireRoles(auth.RoleCommittee, auth.RoleAdmin))
		{
			reports.GET("/inspections", reportHandler.Inspections)
			reports.GET("/inspections/export", reportHandler.Export)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Purge expired drafts in the background
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if removed := draftStore.Purge(); removed > 0 {
					log.Info("Purged expired registration drafts", map[string]interface{}{
						"removed": removed,
					})
				}
			}
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
