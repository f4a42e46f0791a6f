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
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/placehirex/placement-backend/internal/config"
	"github.com/placehirex/placement-backend/internal/db"
	"github.com/placehirex/placement-backend/internal/es"
	"github.com/placehirex/placement-backend/internal/events"
	"github.com/placehirex/placement-backend/internal/httpserver"
	"github.com/placehirex/placement-backend/internal/logging"
	"github.com/placehirex/placement-backend/internal/middleware"
	"github.com/placehirex/placement-backend/internal/mlclient"
	"github.com/placehirex/placement-backend/internal/repo"
	"github.com/placehirex/placement-backend/internal/service"
	"github.com/placehirex/placement-backend/internal/tokens"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: gdb}
	codec := tokens.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	mlClient := mlclient.New(cfg.MLBaseURL, gormRepo)

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: gormRepo, Codec: codec, Producer: producer},
		},
		Student: &httpserver.StudentHTTP{
			Repo: gormRepo,
			Svc: &service.PredictionService{
				Repo:     gormRepo,
				ML:       mlClient,
				Producer: producer,
				ES:       esClient,
			},
		},
		Admin: &httpserver.AdminHTTP{Repo: gormRepo, ML: mlClient, ES: esClient},
		Guard: middleware.NewAccessGuard(codec),
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

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
			log.Printf("http server error: %v", err)
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
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
