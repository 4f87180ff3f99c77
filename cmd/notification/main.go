package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrigrow/storefront/internal/notification/application"
	notifdomain "github.com/agrigrow/storefront/internal/notification/domain"
	notifmysql "github.com/agrigrow/storefront/internal/notification/infrastructure/persistence/mysql"
	"github.com/agrigrow/storefront/internal/notification/infrastructure/sender"
	"github.com/agrigrow/storefront/internal/notification/interfaces/events"
	"github.com/agrigrow/storefront/pkg/config"
	"github.com/agrigrow/storefront/pkg/db"
	"github.com/agrigrow/storefront/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/notification/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Init(cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()
	if err := database.AutoMigrate(&notifdomain.Notification{}); err != nil {
		logger.Fatal(ctx, "failed to migrate database", "error", err)
	}

	app := application.NewNotificationApplicationService(
		notifmysql.NewNotificationRepository(database.DB),
		sender.NewLogSender(),
	)
	consumer := events.NewOrderEventConsumer(cfg.Kafka, app)
	defer consumer.Close()

	go consumer.Run(ctx)
	logger.Info(ctx, "notification worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down notification worker")
	cancel()
}
