package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotline/config"
	"slotline/cron"
	"slotline/database"
	availabilityRepo "slotline/database/repository/availability"
	candidatesRepo "slotline/database/repository/candidates"
	preferencesRepo "slotline/database/repository/preferences"
	"slotline/handlers"
	"slotline/middleware"
	"slotline/models"
	"slotline/routes"
	"slotline/services/availability"
	"slotline/services/candidates"
	"slotline/services/preferences"
	"slotline/services/render"
	"slotline/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	utils.InitPrefsCache()

	// repositories.
	candRepo := candidatesRepo.NewRedisCandidateRepo(utils.GetCacheClient(), config.CandidateTTL())
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	prefsRepo := preferencesRepo.NewRedisPreferenceRepo(utils.GetPrefsCacheClient())

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	if err := availRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	cancelIndexes()

	defaults := candidates.Defaults{
		Window: models.HourWindow{
			MinHour: config.AppConfig.DefaultMinHour,
			MaxHour: config.AppConfig.DefaultMaxHour,
		},
		HourStep: config.AppConfig.HourStep,
		Duration: config.AppConfig.DefaultDuration,
	}
	if err := defaults.Window.Validate(); err != nil {
		logger.Sugar().Fatalf("main: bad DEFAULT_MIN_HOUR/DEFAULT_MAX_HOUR: %v", err)
	}

	// services.
	candidateService := &candidates.DefaultCandidateService{
		Repo:         candRepo,
		Availability: availRepo,
		Defaults:     defaults,
		Logger:       logger.Named("candidates"),
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Repo:   availRepo,
		Logger: logger.Named("availability"),
	}
	timezoneService := preferences.NewTimezoneService(prefsRepo, config.AppConfig.DefaultTimezone, logger.Named("preferences"))

	timelineHandler := handlers.NewTimelineHandler(candidateService, defaults, render.DefaultStyle())
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	preferenceHandler := handlers.NewPreferenceHandler(timezoneService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateTimelineHandler:  timelineHandler.CreateTimelineHandler,
		ListCandidatesHandler:  timelineHandler.ListCandidatesHandler,
		AddCandidateHandler:    timelineHandler.AddCandidateHandler,
		UpdateCandidateHandler: timelineHandler.UpdateCandidateHandler,
		RemoveCandidateHandler: timelineHandler.RemoveCandidateHandler,
		CopyPreviousDayHandler: timelineHandler.CopyPreviousDayHandler,
		NextStartTimeHandler:   timelineHandler.NextStartTimeHandler,
		LayoutHandler:          timelineHandler.LayoutHandler,
		LayoutSVGHandler:       timelineHandler.LayoutSVGHandler,
		StatelessLayoutHandler: timelineHandler.StatelessLayoutHandler,

		GetAvailabilityHandler:     availabilityHandler.GetAvailabilityHandler,
		ReplaceAvailabilityHandler: availabilityHandler.ReplaceAvailabilityHandler,

		GetTimezoneHandler:    preferenceHandler.GetTimezoneHandler,
		SaveTimezoneHandler:   preferenceHandler.SaveTimezoneHandler,
		RevertTimezoneHandler: preferenceHandler.RevertTimezoneHandler,

		HealthHandler: handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle)

	if days := config.AppConfig.AvailabilityRetentionDays; days > 0 {
		stopPrune, err := cron.InitPruneWorker(availabilityService, days)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to schedule availability pruning: %v", err)
		}
		defer stopPrune()
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetPrefsCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
