package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labo-backend/internal/auth"
	"labo-backend/internal/cache"
	"labo-backend/internal/config"
	"labo-backend/internal/database"
	"labo-backend/internal/db"
	"labo-backend/internal/handlers"
	"labo-backend/internal/health"
	apphttp "labo-backend/internal/http"
	"labo-backend/internal/hub"
	"labo-backend/internal/middleware"
	"labo-backend/internal/monitoring"
	"labo-backend/internal/repositories"
	"labo-backend/internal/scheduler"
	"labo-backend/internal/services"
	"labo-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	// Redis is optional: the app degrades to uncached reads without it.
	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	if err := cache.Init(redisAddr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] unavailable (%v), caching and drafts disabled", err)
	} else {
		log.Printf("[Redis] connected to %s", redisAddr)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Object storage init failed: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	slotRepo := repositories.NewTimeSlotRepository(pool)
	stateRepo := repositories.NewStateChangeRepository(pool)
	proposalRepo := repositories.NewProposalRepository(pool)
	catalogRepo := repositories.NewCatalogRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	classRepo := repositories.NewClassRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)
	presetRepo := repositories.NewPresetRepository(pool)
	preferenceRepo := repositories.NewPreferenceRepository(pool)

	// Shared infrastructure
	jwtManager := auth.NewJWTManager(cfg)
	calendarHub := hub.New()
	draftStore := cache.NewDraftStore(time.Duration(cfg.Redis.DraftTTLHours) * time.Hour)

	// Services
	eventService := services.NewEventService(pool, eventRepo, slotRepo, stateRepo, proposalRepo, documentRepo, calendarHub)
	catalogService := services.NewCatalogService(catalogRepo, roomRepo, classRepo, eventRepo)
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(cfg, userRepo, totpRepo, jwtManager)
	documentService := services.NewDocumentService(documentRepo, store)
	presetService := services.NewPresetService(presetRepo, documentRepo)
	reportService := services.NewReportService(eventRepo, slotRepo, roomRepo)
	exportService := services.NewExportService(eventRepo, slotRepo, roomRepo)

	// Handlers
	eventHandler := handlers.NewEventHandler(eventService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	authHandler := handlers.NewAuthHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	presetHandler := handlers.NewPresetHandler(presetService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceRepo)
	draftHandler := handlers.NewDraftHandler(draftStore)
	reportHandler := handlers.NewReportHandler(reportService, exportService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.NewCollector(pool), calendarHub)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	router := apphttp.NewRouter(
		eventHandler,
		catalogHandler,
		authHandler,
		totpHandler,
		documentHandler,
		presetHandler,
		preferenceHandler,
		draftHandler,
		reportHandler,
		monitoringHandler,
		healthHandler,
		calendarHub,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			corsMiddleware(router)))

	// Background jobs: state roller + 2FA attempt cleanup
	jobs := scheduler.New(eventService, totpService)
	if err := jobs.Start(); err != nil {
		log.Fatalf("Scheduler failed to start: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
