package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/campusbazaar/backend/internal/config"
	"github.com/campusbazaar/backend/internal/db"
	"github.com/campusbazaar/backend/internal/events"
	"github.com/campusbazaar/backend/internal/handlers"
	"github.com/campusbazaar/backend/internal/httpserver"
	"github.com/campusbazaar/backend/internal/logging"
	authmw "github.com/campusbazaar/backend/internal/middleware/auth"
	loggingmw "github.com/campusbazaar/backend/internal/middleware/logging"
	"github.com/campusbazaar/backend/internal/repo"
	"github.com/campusbazaar/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("database migration error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	r := &repo.GormRepo{DB: gdb}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))
	e.HTTPErrorHandler = httpserver.ErrorHandler(logger)

	deps := httpserver.Deps{
		DB:   gdb,
		Auth: &authmw.Authenticator{Repo: r, JWTSecret: cfg.JWTSecret},
		AuthHandler: &handlers.AuthHandler{
			Svc:      &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret},
			Producer: producer,
		},
		ProductHandler: &handlers.ProductHandler{
			Svc:      &service.CatalogService{Repo: r},
			Producer: producer,
		},
		OrderHandler: &handlers.OrderHandler{
			Svc:      &service.OrderService{Repo: r},
			Producer: producer,
		},
		VendorHandler: &handlers.VendorHandler{Svc: &service.VendorService{Repo: r}},
		AdminHandler:  &handlers.AdminHandler{Svc: &service.AdminService{Repo: r}},
		Started:       time.Now(),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db unwrap error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("producer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
