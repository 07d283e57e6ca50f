package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"parcelquote/cmd"
	httpadapter "parcelquote/internal/adapters/in/http"
	"parcelquote/internal/adapters/out/postgres"
	"parcelquote/internal/adapters/out/sessionstore"
	"parcelquote/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	tariff, err := cmd.LoadTariff(configs.TariffFile)
	if err != nil {
		log.Fatalf("Error loading tariff: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	sessions, err := newSessionStore(ctx, configs)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, sessions, tariff, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	if configs.SeedDemoAccounts {
		if err = app.SeedDemoAccounts(ctx); err != nil {
			log.Fatalf("Error seeding demo accounts: %v", err)
		}
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewRouter(ctx, app.CreateServer(), logger)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	startWebServer(ctx, e, configs.HTTPPort, logger)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// newSessionStore uses redis when REDIS_ADDR is set and keeps sessions in
// memory otherwise.
func newSessionStore(ctx context.Context, configs cmd.Config) (ports.SessionStore, error) {
	clock := ports.SystemClock()
	if configs.RedisAddr == "" {
		slog.WarnContext(ctx, "REDIS_ADDR not set, sessions are kept in memory")
		return sessionstore.NewMemoryStore(clock), nil
	}
	rdb, err := sessionstore.NewRedisClient(ctx, configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
	if err != nil {
		return nil, err
	}
	return sessionstore.NewRedisStore(rdb, clock), nil
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
}
