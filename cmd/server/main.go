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

	"github.com/grocerease/grocery-shop/internal/config"
	"github.com/grocerease/grocery-shop/internal/httpserver"
	"github.com/grocerease/grocery-shop/internal/logging"
	loggingmw "github.com/grocerease/grocery-shop/internal/middleware/logging"
	"github.com/grocerease/grocery-shop/internal/mykafka"
	"github.com/grocerease/grocery-shop/internal/repo"
	"github.com/grocerease/grocery-shop/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	gormRepo := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	cartSvc := &service.CartService{Repo: gormRepo}
	checkoutSvc := &service.CheckoutService{Repo: gormRepo}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: prod},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Checkout: checkoutSvc, Producer: prod},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: prod},
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
