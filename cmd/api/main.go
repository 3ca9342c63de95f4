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

	"github.com/gin-gonic/gin"

	"staybnb/internal/config"
	"staybnb/internal/database"
	"staybnb/internal/events"
	"staybnb/internal/modules/notification"
	jwtsvc "staybnb/internal/pkg/jwt"
	"staybnb/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL, !config.IsProdLike(cfg.AppEnv))
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	hub := notification.NewHub()
	publisher := events.Multi{hub}
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = append(publisher, kafkaPublisher)
		log.Printf("events: publishing to kafka topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(db, j, hub, publisher, cfg.HTTP.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (env=%s)", cfg.HTTP.Address, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	hub.Close()
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Printf("kafka writer close: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("server stopped")
}
