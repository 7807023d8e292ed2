package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "bdaywisher/internal/application/service"
	// Domain Layer
	"bdaywisher/internal/domain/repository"

	// Infrastructure Layer
	"bdaywisher/internal/infrastructure/database/sqlite"
	lineClient "bdaywisher/internal/infrastructure/line"
	"bdaywisher/internal/infrastructure/notify"
	redisStore "bdaywisher/internal/infrastructure/redis"
	"bdaywisher/internal/infrastructure/scheduler"
	"bdaywisher/internal/infrastructure/sms"
	"bdaywisher/internal/infrastructure/vcard"

	// Interfaces Layer
	"bdaywisher/internal/interfaces/api/handler"
	"bdaywisher/internal/interfaces/api/router"

	// Packages
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/config"
	appLogger "bdaywisher/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

// resources are released in reverse order of acquisition on shutdown.
type resources struct {
	subscription repository.Subscription
	scheduler    *scheduler.Scheduler
	db           *gorm.DB
	closers      []io.Closer
}

func gracefulShutdown(apiServer *http.Server, res *resources, appLog appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	appLog.Info("Removing delivery completion listener...")
	res.subscription.Cancel()

	appLog.Info("Stopping scheduler...")
	res.scheduler.Stop()

	for _, c := range res.closers {
		if err := c.Close(); err != nil {
			appLog.Error("Error closing resource", err)
		}
	}

	appLog.Info("Closing database connection...")
	if err := sqlite.CloseDB(res.db); err != nil {
		appLog.Error("Error closing database", err)
	} else {
		appLog.Info("Database connection closed.")
	}

	appLog.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLog, err := appLogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync(appLog)
	appLog.Info(fmt.Sprintf("Logger initialized (env=%s, level=%s, timezone=%s).", cfg.Env, cfg.LogLevel, cfg.Location))

	ctx := context.Background()
	clk := clock.Real{Location: cfg.Location}
	res := &resources{}

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DatabasePath, appLog)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	res.db = db
	coordinatorRepo := sqlite.NewCoordinatorRepository(db)

	var kv repository.KeyValueStore
	switch cfg.KVBackend {
	case config.KVBackendRedis:
		store, err := redisStore.New(ctx, redisStore.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB}, appLog)
		if err != nil {
			appLog.Error("Failed to connect to redis", err)
			os.Exit(1)
		}
		res.closers = append(res.closers, store)
		kv = store
	default:
		kv = sqlite.NewKVRepository(db)
	}

	var rosterSource repository.RosterSource
	switch cfg.RosterSource {
	case config.RosterSourceVCard:
		rosterSource = vcard.NewSource(cfg.VCardPath, appLog)
	default:
		if cfg.SeedRoster {
			if n, err := sqlite.SeedIfEmpty(ctx, db); err != nil {
				appLog.Error("Failed to seed roster", err)
			} else if n > 0 {
				appLog.Info(fmt.Sprintf("Seeded roster with %d sample people.", n))
			}
		}
		rosterSource = sqlite.NewRosterRepository(db)
	}
	appLog.Info(fmt.Sprintf("Storage initialized (kv=%s, roster=%s).", cfg.KVBackend, cfg.RosterSource))

	// --- Alert channels ---
	notifiers := []notify.Notifier{notify.NewLogNotifier(appLog)}
	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, appLog)
		if err != nil {
			appLog.Error("Failed to create LINE client", err)
			os.Exit(1)
		}
		notifiers = append(notifiers, notify.NewLineNotifier(line, coordinatorRepo))
	} else {
		appLog.Warn("CHANNEL_SECRET or CHANNEL_ACCESS_TOKEN not set, LINE alerts and webhook disabled.")
	}
	if cfg.TelegramEnabled() {
		bot, err := notify.NewTelegramBot(cfg.TelegramToken)
		if err != nil {
			appLog.Error("Failed to create Telegram bot, Telegram alerts disabled", err)
		} else {
			notifiers = append(notifiers, notify.NewTelegramNotifier(bot, cfg.TelegramChatID))
		}
	}
	broadcaster := notify.NewBroadcaster(appLog, notifiers...)
	appLog.Info(fmt.Sprintf("Alert channels: %v", broadcaster.Channels()))

	var smsSender repository.SMSSender
	if cfg.SMSEnabled {
		sender, err := sms.NewSender(ctx, cfg.AWSRegion, appLog)
		if err != nil {
			appLog.Error("Failed to configure SNS, SMS wishes disabled", err)
		} else {
			smsSender = sender
		}
	}

	cronScheduler := scheduler.NewScheduler(cfg.Location, broadcaster, clk, appLog)
	res.scheduler = cronScheduler

	// --- Application Services ---
	settingsSvc := appService.NewSettingsService(kv, appLog)
	rosterSvc := appService.NewRosterService(rosterSource, kv, clk, appLog)
	ledgerSvc := appService.NewLedgerService(kv, cronScheduler, appLog)
	schedulerSvc := appService.NewSchedulerService(cronScheduler, ledgerSvc, settingsSvc, appLog)
	orchestratorSvc := appService.NewOrchestratorService(cronScheduler, ledgerSvc, schedulerSvc, rosterSvc, settingsSvc, clk, appLog)
	wishSvc := appService.NewWishService(smsSender, appLog)
	coordinatorSvc := appService.NewCoordinatorService(coordinatorRepo, clk, appLog)
	appLog.Info("Application services initialized.")

	// --- Startup sequence ---
	settings := settingsSvc.Load(ctx)
	if err := ledgerSvc.Load(ctx); err != nil {
		appLog.Error("Reminder ledger loaded with errors", err)
	}
	res.subscription = cronScheduler.OnCompleted(ledgerSvc.OnDeliveryCompleted)
	ledgerSvc.Restore(ctx, settings, clk.Now())

	rosterSvc.LoadCachedRoster(ctx)
	if _, err := rosterSvc.RefreshAll(ctx); err != nil {
		appLog.Error("Initial roster fetch failed, serving cached roster", err)
	}
	if _, err := rosterSvc.RefreshTodayTomorrow(ctx, clk.Now()); err != nil {
		appLog.Error("Initial today/tomorrow computation failed", err)
	}

	if _, err := cronScheduler.AddJob(cfg.DailyRefreshSpec, func() {
		if _, err := rosterSvc.RefreshTodayTomorrow(context.Background(), clk.Now()); err != nil {
			appLog.Error("Daily today/tomorrow refresh failed", err)
		}
	}); err != nil {
		appLog.Error("Failed to add daily refresh job", err)
	}

	// --- API Handlers ---
	routerCfg := &router.Config{
		RosterHandler:   handler.NewRosterHandler(rosterSvc, orchestratorSvc, clk, appLog),
		SettingsHandler: handler.NewSettingsHandler(settingsSvc, orchestratorSvc, appLog),
		ReminderHandler: handler.NewReminderHandler(rosterSvc, schedulerSvc, ledgerSvc, orchestratorSvc, clk, appLog),
		CalendarHandler: handler.NewCalendarHandler(ledgerSvc, clk, appLog),
		WishHandler:     handler.NewWishHandler(rosterSvc, wishSvc, appLog),
		Logger:          appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, coordinatorSvc, rosterSvc, ledgerSvc, orchestratorSvc, clk, appLog)
	}
	appLog.Info("API handlers initialized.")

	// --- Router ---
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, res, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
