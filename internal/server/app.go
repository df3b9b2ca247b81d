// Package server initializes and runs the authentication server: it opens
// the database, applies migrations, wires the services and starts the HTTP
// endpoint, handling graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/knowhowcafe/auth/internal/logging"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/httpapi"
	"github.com/knowhowcafe/auth/internal/server/mail"
	"github.com/knowhowcafe/auth/internal/server/repositories/repomanager"
	"github.com/knowhowcafe/auth/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	mailer      *mail.SMTPMailer
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(c)
	if err != nil {
		return nil, fmt.Errorf("mailer init error: %w", err)
	}

	otpService := services.NewOtpService(db, m, c)
	authService := services.NewAuthService(db, m, otpService, mailer, c, logger)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		authService: authService,
		mailer:      mailer,
	}, nil
}

// LoadEnv overlays a local .env file onto the process environment before
// config parsing. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config, app.logger, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// checkMailRelay verifies SMTP connectivity at startup. Failure is logged
// but does not prevent the server from starting; outside production the
// services layer falls back to logging codes anyway.
func (app *App) checkMailRelay(ctx context.Context) {
	if err := app.mailer.Ping(ctx); err != nil {
		app.logger.Warn(ctx, "mail relay unreachable", "error", err.Error())
		return
	}
	app.logger.Info(ctx, "mail relay ready")
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.checkMailRelay(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
