package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-appointment-platform/cmd/bootstrap"
	"doctor-appointment-platform/config"
	"doctor-appointment-platform/internal/infrastructure/broker"
	"doctor-appointment-platform/internal/infrastructure/cache"
	"doctor-appointment-platform/internal/infrastructure/database"
	"doctor-appointment-platform/internal/repository"
	"doctor-appointment-platform/internal/scheduler"
	"doctor-appointment-platform/internal/service"
	"doctor-appointment-platform/internal/usecase"

	"github.com/sirupsen/logrus"
)

// The worker process runs the cron jobs and the user-info queue consumer.
// It shares no state with the API process beyond the database, Redis and
// the broker.
func main() {
	bootstrap.SetupLogger()
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	reportRepo := repository.NewReportRepository()

	mailer := &service.LogMailSender{Log: log}
	reminderService := service.NewReminderService(db, log, appointmentRepo, mailer, loc)
	reportUsecase := usecase.NewReportUsecase(db, log, appointmentRepo, userRepo, reportRepo)

	sched, err := scheduler.New(cfg.Scheduler, log, reminderService, reportUsecase, loc)
	if err != nil {
		log.Fatalf("Failed to build scheduler: %v", err)
	}
	sched.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheService := service.NewUserCacheService(redisClient, log)
	brokerHandler := broker.NewRabbitMQHandler(cfg.Broker, log)

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- brokerHandler.Consume(ctx, func(ctx context.Context, event service.UserCreatedEvent) error {
			return cacheService.CacheUser(ctx, event)
		})
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down worker...")
	case err := <-consumerDone:
		if err != nil {
			log.Errorf("Queue consumer stopped: %v", err)
		}
	}

	cancel()
	sched.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Worker shutdown complete")
}
