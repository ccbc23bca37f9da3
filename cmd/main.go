package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	discordclient "luvihelper/clients/discord"
	"luvihelper/config"
	"luvihelper/db"
	"luvihelper/handlers"
	"luvihelper/services/auditlog"
	"luvihelper/services/dedup"
	"luvihelper/services/dispatcher"
	"luvihelper/services/reminders"
	"luvihelper/services/settings"
	"luvihelper/usecases/detection"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	guildSettingsRepo := db.NewPostgresGuildSettingsRepository(dbConn, cfg.DatabaseSchema)
	userSettingsRepo := db.NewPostgresUserSettingsRepository(dbConn, cfg.DatabaseSchema)
	auditLogRepo := db.NewPostgresAuditLogRepository(dbConn, cfg.DatabaseSchema)

	// Initialize the shared Discord session and its capability client
	session, err := discordclient.NewSession(cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	discordClient := discordclient.NewDiscordClient(session)

	// Initialize services
	settingsService := settings.NewSettingsService(guildSettingsRepo, userSettingsRepo)
	dispatcherService := dispatcher.NewDispatcherService(discordClient)
	auditLogService := auditlog.NewAuditLogService(auditLogRepo, discordClient, cfg.DiscordConfig.LogChannelID)
	schedulerService := reminders.NewReminderSchedulerService(dispatcherService, auditLogService)
	dedupCacheService := dedup.NewDedupCacheService()

	detectionUseCase := detection.NewDetectionUseCase(
		dedupCacheService,
		settingsService,
		schedulerService,
		dispatcherService,
		auditLogService,
	)

	eventsHandler := handlers.NewDiscordEventsHandler(
		session,
		discordClient,
		detectionUseCase,
		dispatcherService,
		auditLogService,
		cfg.DiscordConfig.SourceBotID,
		cfg.DiscordConfig.OwnerID,
	)
	commandsHandler := handlers.NewDiscordCommandsHandler(session, settingsService, auditLogService)

	// Warm the settings mirror before any event can arrive
	if err := settingsService.LoadFromStore(context.Background()); err != nil {
		return err
	}

	if err := eventsHandler.StartBot(); err != nil {
		return err
	}
	defer eventsHandler.StopBot()
	defer schedulerService.Stop()

	if err := commandsHandler.RegisterCommands(); err != nil {
		return err
	}

	// Daily cleanup of expired audit entries
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc("@daily", func() {
		if err := auditLogService.CleanupOldEntries(context.Background()); err != nil {
			log.Printf("❌ Audit cleanup failed: %v", err)
		}
	}); err != nil {
		return err
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// Create a new router
	router := mux.NewRouter()
	statusHandler := handlers.NewStatusHandler(settingsService, schedulerService, dedupCacheService)
	statusHandler.SetupEndpoints(router)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
