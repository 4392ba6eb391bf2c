package main

import (
	"context"
	"log"
	"time"

	"sports-booking/cmd"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/usecase"
	"sports-booking/internal/wire"
	"sports-booking/pkg/auth"
	"sports-booking/pkg/cache"
	"sports-booking/pkg/database"
	"sports-booking/pkg/metrics"
	"sports-booking/pkg/mq"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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

	location, err := config.App.Location()
	if err != nil {
		logger.Fatal("Invalid APP_TIMEZONE", zap.String("timezone", config.App.Timezone), zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db, logger)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	infra := usecase.Infra{
		Tx:       database.NewTxManager(db, logger),
		Location: location,
	}

	if config.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		client, err := cache.NewRedisClient(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()

		infra.Cache = cache.NewRedisCache(client, config.Redis.CacheTTL, logger)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Info("REDIS_ADDR not set, available slots are not cached")
	}

	if config.RabbitMQ.URL != "" {
		publisher, err := mq.NewPublisher(config.RabbitMQ.URL, config.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()

		infra.Events = publisher
		logger.Info("RabbitMQ connected", zap.String("exchange", config.RabbitMQ.Exchange))
	} else {
		infra.Events = mq.Nop{}
		logger.Info("RABBITMQ_URL not set, booking events are not published")
	}

	var collector *metrics.Metrics
	if config.Metrics.Enabled {
		collector = metrics.New("sports_booking")
		infra.Metrics = collector
		logger.Info("Metrics enabled", zap.String("path", config.Metrics.Path))
	}

	app := wire.Wiring(wire.Deps{
		Repo:    repository.NewRepository(db, logger),
		Infra:   infra,
		Tokens:  auth.NewTokenManager(config.JWT.Secret, config.JWT.Issuer),
		Metrics: collector,
		DB:      db,
		Config:  config,
		Logger:  logger,
	})

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
