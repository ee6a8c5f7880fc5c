// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"queue-booking/cmd"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/notify"
	"queue-booking/internal/wire"
	"queue-booking/pkg/database"
	"queue-booking/pkg/mailer"
	"queue-booking/pkg/queue"
	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis (notification job queue)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Notification pipeline: gateway -> Redis queue -> worker -> Telegram + email
	jobQueue := queue.NewQueue(redisClient, logger)
	gateway := notify.NewQueueGateway(jobQueue, logger)
	mail := mailer.NewSMTPMailer(config.SMTP, logger)
	telegram := notify.NewTelegramSender(config.Telegram, logger)
	worker := notify.NewWorker(jobQueue, telegram, mail, logger)
	go worker.Run(ctx)

	tokens := token.NewJWTService(config.JWT.Secret, config.JWT.ExpiryHours)

	// Wire all dependencies
	app := wire.Wiring(repos, config, tokens, mail, gateway, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
