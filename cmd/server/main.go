package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/haeun-dev/campus-life-server/internal/config"
	"github.com/haeun-dev/campus-life-server/internal/database"
	"github.com/haeun-dev/campus-life-server/internal/handler"
	"github.com/haeun-dev/campus-life-server/internal/queue"
	"github.com/haeun-dev/campus-life-server/internal/repository"
	"github.com/haeun-dev/campus-life-server/internal/router"
	"github.com/haeun-dev/campus-life-server/internal/scheduler"
	"github.com/haeun-dev/campus-life-server/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables cache and rate limiting

	storeRepo := repository.NewStoreRepo(db)
	noticeRepo := repository.NewNoticeRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	var publisher *service.Publisher
	if cfg.AMQPURL != "" {
		publisher = service.NewPublisher(cfg.AMQPURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, userRepo, tokenRepo, publisher),
		Store:     handler.NewStoreHandler(cfg.SchoolID, storeRepo, noticeRepo),
		Notice:    handler.NewNoticeHandler(storeRepo, noticeRepo),
		Favorite:  handler.NewFavoriteHandler(favoriteRepo),
		JWTSecret: cfg.JWTSecret,
	}, rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.New(storeRepo).Run(ctx)

	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartVerificationConsumer(cfg.AMQPURL); err != nil {
				log.Printf("verification consumer not started: %v", err)
			}
		}()
	}

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	cancel() // stops the scheduler between firings

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
