package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/postgres"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/rabbit"
	redisadapter "github.com/sandeshlamsal/eventpasal/internal/adapters/redis"
	"github.com/sandeshlamsal/eventpasal/internal/auth"
	"github.com/sandeshlamsal/eventpasal/internal/config"
	httphandler "github.com/sandeshlamsal/eventpasal/internal/http"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"github.com/sandeshlamsal/eventpasal/internal/payment"
	"github.com/sandeshlamsal/eventpasal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := postgres.NewRepository(pool)

	redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
	cache := redisadapter.NewCache(redisClient)
	rl := redisadapter.NewRateLimiter(cache)

	rabbitConn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer rabbitConn.Close()
	pub, err := rabbit.NewPublisher(rabbitConn)
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	sessions := auth.NewSessionStore()
	authSvc := auth.NewService(repo, tokens, sessions, logger)

	changes, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go func() {
		for change := range changes {
			entry := logger.WithField("auth_event", string(change.Event))
			if change.Session != nil {
				entry = entry.WithField("user_id", change.Session.User.ID.String())
			}
			entry.Info("session changed")
		}
	}()

	eventSvc := service.NewEventService(repo, repo, repo, cache, pub, logger)
	paymentSvc := service.NewPaymentService(repo, repo, repo, pub, logger)
	scheduler := payment.NewScheduler(paymentSvc, cfg.PaymentDelay, logger)
	paymentSvc.SetScheduler(scheduler)
	defer scheduler.Stop()
	userSvc := service.NewUserService(repo, repo, logger)

	handlers := httphandler.NewHandlers(eventSvc, paymentSvc, userSvc, authSvc, repo)
	r := httphandler.SetupRouter(handlers, logger, authSvc, rl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	logger.WithField("addr", cfg.HTTPAddr).Info("api listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
