package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/campushub/asset-manager/internal/config"
	"github.com/campushub/asset-manager/internal/events"
	"github.com/campushub/asset-manager/internal/httpserver"
	"github.com/campushub/asset-manager/internal/logging"
	mw "github.com/campushub/asset-manager/internal/middleware"
	"github.com/campushub/asset-manager/internal/repo"
	"github.com/campushub/asset-manager/internal/search"
	"github.com/campushub/asset-manager/internal/service"
	"github.com/campushub/asset-manager/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	tokens := &token.Service{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	r := &repo.GormRepo{DB: db}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress)
	}

	deps := &httpserver.Deps{
		Tokens:         tokens,
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokens}, Producer: producer},
		AssetHandler:   &httpserver.AssetHTTP{Svc: &service.AssetService{Repo: r}, Producer: producer},
		RequestHandler: &httpserver.RequestHTTP{Svc: &service.RequestService{Repo: r}, Producer: producer},
		UserHandler:    &httpserver.UserHTTP{Svc: &service.UserService{Repo: r}},
	}

	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "asset"}
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), mw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
