package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"student-registry/internal/config"
	"student-registry/internal/db"
	"student-registry/internal/health"
	"student-registry/internal/logger"
	"student-registry/internal/middleware"
	"student-registry/internal/student"

	"github.com/go-chi/chi/v5"
)

type App struct {
	config  *config.Config
	router  chi.Router
	server  *http.Server
	session *db.Session
	logger  *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	// The database session dials lazily on first use; migrations run as part
	// of that single shared initialization.
	app.session = db.NewSession(cfg.Database, student.Migrate)

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler(app.session)
	healthHandler.RegisterRoutes(app.router)

	studentRepo := student.NewRepository(app.session)
	studentCodes := student.NewCodeGenerator(app.session)
	studentService := student.NewService(studentRepo, studentCodes)
	studentHandler := student.NewHandler(studentService, slogLogger)
	studentHandler.RegisterRoutes(app.router)

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}
	return a.session.Close()
}
