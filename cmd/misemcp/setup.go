package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/misemcp/internal/config"
	"github.com/sandevgo/misemcp/internal/core"
	"github.com/sandevgo/misemcp/internal/mise"
	"github.com/sandevgo/misemcp/internal/scrape"
	"github.com/sandevgo/misemcp/internal/storage/sqlite"
	"github.com/sandevgo/misemcp/internal/tools"
	"github.com/sandevgo/misemcp/pkg/log"
)

type App struct {
	AppConfig       *config.AppConfig
	TimeoutConfig   *config.TimeoutConfig
	TransportConfig *config.TransportConfig

	Handlers *tools.Handlers
	Audit    core.AuditRepository
	db       *sql.DB
}

// NewApp loads configuration and wires the handlers. The audit log is
// opened only when it is enabled.
func NewApp(ctx context.Context) *App {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	app := &App{
		AppConfig:       config.NewAppConfig(ctx),
		TimeoutConfig:   config.NewTimeoutConfig(ctx),
		TransportConfig: config.NewTransportConfig(ctx),
	}

	executor := mise.NewExecutor(
		mise.WithBinary(app.AppConfig.GetMiseBinary()),
		mise.WithDefaultTimeout(app.TimeoutConfig.GetDefaultTimeout()),
	)
	app.Handlers = tools.NewHandlers(
		executor,
		scrape.NewTextDecoder(),
		tools.WithTimeouts(tools.TimeoutsFrom(app.TimeoutConfig)),
	)

	if app.AppConfig.IsAuditEnabled() {
		db, err := sqlite.NewDB(ctx, app.AppConfig.GetAuditDBPath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize audit log")
		}
		app.db = db
		app.Audit = sqlite.NewAuditLog(db)
		logger.Debug().Str("path", app.AppConfig.GetAuditDBPath()).Msg("audit log enabled")
	}

	return app
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := config.AppConfig{RuntimePath: runtimePath}.GetEnvPath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
