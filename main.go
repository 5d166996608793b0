package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/archive"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/coach"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/config"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/db"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/handlers"
	applog "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/logger"
	mw "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/middleware"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/store"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/training"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, version)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	archiver, err := newArchiver(ctx, cfg)
	if err != nil {
		logger.Fatal("transcript archive setup failed", zap.Error(err))
	}
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("generation backend setup failed", zap.Error(err))
	}
	logger.Info("generation backend ready",
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", cfg.AI.Model),
		zap.Duration("timeout", cfg.AI.Timeout),
		zap.Bool("archive", cfg.ArchiveEnabled()),
	)

	st := store.New(bdb)
	gen := coach.New(backend, coach.Options{
		Timeout:  cfg.AI.Timeout,
		Archiver: archiver,
		Logger:   logger.Named("coach"),
	})
	svc := training.NewService(st, gen, logger.Named("training"), nil)
	h := handlers.New(svc, st, logger.Named("http"), cfg.Debug, version)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	handlers.Routes(e, h, mw.JWT(cfg.JWTKey(), cfg.JWTIssuer))

	if cfg.Debug {
		go func() {
			logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
			if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server exited", zap.Error(err))
			}
		}()
		<-ctx.Done()
		shutdown(logger, e.Shutdown)
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	// Plan generation holds the response open for up to the AI timeout.
	writeTimeout := 120 * time.Second
	if floor := cfg.AI.Timeout + 15*time.Second; floor > writeTimeout {
		writeTimeout = floor
	}
	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
		if err := s.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("tls server exited", zap.Error(err))
			os.Exit(1)
		}
	}()
	<-ctx.Done()
	shutdown(logger, s.Shutdown)
}

func shutdown(logger *zap.Logger, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := fn(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newArchiver(ctx context.Context, cfg *config.Config) (archive.Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return archive.Nop{}, nil
	}
	return archive.NewS3(ctx, cfg.Archive)
}

func newBackend(ctx context.Context, cfg *config.Config) (coach.Backend, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		return coach.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model)
	default:
		return coach.NewFixture(cfg.AI.FixtureDir), nil
	}
}
