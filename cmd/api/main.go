package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carhub/catalog-service/config"
	"github.com/carhub/catalog-service/internal/auth"
	"github.com/carhub/catalog-service/internal/reservation"
	"github.com/carhub/catalog-service/internal/server"
	"github.com/carhub/catalog-service/pkg/broker"
	"github.com/carhub/catalog-service/pkg/cache"
	"github.com/carhub/catalog-service/pkg/db"
	"github.com/carhub/catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	productH "github.com/carhub/catalog-service/internal/product/handler"
	productRepoPkg "github.com/carhub/catalog-service/internal/product/repository"
	productUCPkg "github.com/carhub/catalog-service/internal/product/usecase"

	reservationH "github.com/carhub/catalog-service/internal/reservation/handler"
	reservationRepoPkg "github.com/carhub/catalog-service/internal/reservation/repository"
	reservationUCPkg "github.com/carhub/catalog-service/internal/reservation/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	zlog, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Server.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The database handle is lazy: nothing is dialed until the first request
	// needs it.
	postgres := db.NewPostgres(cfg.Postgres)
	defer postgres.Close()

	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			zlog.Warn("redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var events reservation.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := broker.NewPublisher(cfg.Kafka)
		defer publisher.Close()
		events = publisher
	}

	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret)

	productRepo := productRepoPkg.NewPGRepository(postgres)
	productUC := productUCPkg.NewProductUseCase(productRepo, redisClient, zlog)
	productHandler := productH.NewProductHandler(productUC, zlog)

	reservationRepo := reservationRepoPkg.NewPGRepository(postgres)
	reservationUC := reservationUCPkg.NewReservationUseCase(reservationRepo, events, zlog)
	reservationHandler := reservationH.NewReservationHandler(reservationUC, zlog)

	router := server.NewRouter(server.Deps{
		Products:        productHandler,
		Reservations:    reservationHandler,
		Verifier:        verifier,
		Postgres:        postgres,
		Redis:           redisClient,
		Logger:          zlog,
		CORSAllowOrigin: cfg.Server.CORSAllowOrigin,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("catalog service listening", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
}
