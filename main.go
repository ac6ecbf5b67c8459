package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeboard-analytics-service/internal/config"
	"cafeboard-analytics-service/internal/feed"
	httpapi "cafeboard-analytics-service/internal/http"
	"cafeboard-analytics-service/internal/logger"
	"cafeboard-analytics-service/internal/queue"
	"cafeboard-analytics-service/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	snapshot := store.New()

	if cfg.RabbitMQURL != "" {
		log.Info("order feed enabled", zap.String("queue", feed.Queue))
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without feed", zap.Error(err))
			qc = nil
		}

		if qc != nil {
			consumer := feed.New(qc, snapshot, log)
			if err := consumer.Setup(); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; continuing without feed", zap.Error(err))
				_ = qc.Close()
			} else {
				defer qc.Close()
				go func() {
					if err := consumer.Run(); err != nil {
						log.Error("order feed stopped", zap.Error(err))
					}
				}()
			}
		}
	} else {
		log.Info("order feed disabled (RABBITMQ_URL is empty); snapshot ingest is HTTP-only")
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(snapshot, log, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("analytics api ready", zap.String("base", "/api"))
		log.Info("analytics service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
