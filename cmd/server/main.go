package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"meetingportal/internal/account"
	"meetingportal/internal/audit"
	"meetingportal/internal/config"
	"meetingportal/internal/daemon"
	"meetingportal/internal/database"
	"meetingportal/internal/logger"
	"meetingportal/internal/meeting"
	"meetingportal/internal/ratelimit"
	"meetingportal/internal/repository"
	"meetingportal/internal/telemetry"
	"meetingportal/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// No listener starts without a valid configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	location, err := cfg.Meeting.Location()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	defer log.Close()

	tel, err := telemetry.New(ctx, log.Logger, cfg.Telemetry, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.Meter(cfg.Telemetry.ServiceName))
	if err != nil {
		return err
	}

	// Storage
	var (
		repo           repository.Repository
		sessionStorage fiber.Storage
	)
	switch cfg.Database.Driver {
	case config.StorageDriverPostgres:
		if err := database.Migrate(log.Logger, cfg.Database.URL); err != nil {
			return err
		}

		db := database.NewDatabase()
		if err := db.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		repo = &db
		sessionStorage = postgres.New(postgres.Config{
			DB:         db.Pool,
			Table:      "fiber_sessions",
			GCInterval: time.Minute,
		})
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage; data is lost on restart")
		repo = repository.NewMemoryRepository()
	}

	// Reset tokens and attempt counters live in Redis when it is configured
	// so that every instance sees them.
	var (
		tokens  account.TokenStore = account.NewCacheTokenStore(cfg.Auth.ResetTokenTTL)
		limiter ratelimit.Limiter  = ratelimit.NewCacheLimiter(nil)
	)
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		tokens = account.NewRedisTokenStore(client)
		limiter = ratelimit.NewRedisLimiter(client, nil)
	}

	var auditOut io.Writer
	if cfg.Log.AuditFile != "" {
		w := audit.NewRotatingWriter(cfg.Log.AuditFile)
		defer w.Close()
		auditOut = w
	}
	auditor := audit.NewAuditor(log.Logger, auditOut)

	accounts := account.NewManager(log.Logger, repo, tokens, account.NewLogMailer(log.Logger), auditor, account.ManagerConfig{
		BaseURL:  cfg.Server.BaseURL,
		ResetTTL: cfg.Auth.ResetTokenTTL,
	})
	authenticator := account.NewAuthenticator(log.Logger, repo, auditor)
	meetings := meeting.NewManager(log.Logger, repo, auditor, metrics, meeting.Config{
		SaveTimeout: cfg.Meeting.SaveTimeout,
		Location:    location,
	})

	store := session.New(session.Config{
		Storage:        sessionStorage,
		KeyLookup:      "cookie:session_id",
		CookieSecure:   cfg.Auth.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     cfg.Auth.SessionExpiration,
	})

	handler := web.NewHandler(log.Logger, web.HandlerParam{
		Store:         store,
		Accounts:      accounts,
		Authenticator: authenticator,
		Meetings:      meetings,
		Limiter:       limiter,
		Metrics:       metrics,
		Health:        repo,
		Location:      location,
	})
	app := web.NewApp(web.AppConfig{
		ServiceName:  cfg.Telemetry.ServiceName,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handler)

	// Background daemons
	daemonCtx, cancelDaemons := context.WithCancel(ctx)
	defer cancelDaemons()

	daemons := daemon.NewDaemonManager(log.Logger)
	daemons.Add("meeting-sweeper", daemon.MeetingSweeper(meetings, cfg.Meeting.SweepInterval, log.Logger))
	daemons.Start(daemonCtx)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", cfg.Server.Addr(), "environment", cfg.Server.Environment, "telemetry", tel.IsEnabled())
		listenErr <- app.Listen(cfg.Server.Addr())
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-listenErr:
		if err != nil {
			serveErr = fmt.Errorf("failed to start server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("Failed to shut down server", "error", err)
	}

	cancelDaemons()
	daemons.Wait()

	log.Info("Server stopped")
	return serveErr
}
