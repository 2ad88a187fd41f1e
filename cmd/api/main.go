package main

import (
	"context"
	"log"

	apporder "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/tracking"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	ginserver "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/http/gin"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/http/storefront"
	kafkainfra "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/messaging/kafka"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/persistence/postgres"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/persistence/redisstore"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/interfaces/http/handler"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/interfaces/http/router"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	logg, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		logg.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)

	trackedSet, err := redisstore.New(cfg.Redis)
	if err != nil {
		logg.Fatal("redis connection failed", logger.Error(err))
	}
	defer trackedSet.Close()

	producer, err := kafkainfra.NewPurchaseProducer(cfg.Kafka, logg)
	if err != nil {
		logg.Fatal("kafka producer init failed", logger.Error(err))
	}
	defer producer.Close(ctx)

	gate := tracking.NewGate(trackedSet, producer, cfg.Tracking.StorageKey, logg)
	client := storefront.NewClient(cfg.Storefront, logg)

	orderService := apporder.NewService(
		client,
		orderRepo,
		purchaseRepo,
		gate,
		domain.ParseIDStyle(cfg.Tracking.IDStyle),
		logg,
	)

	consumer, err := kafkainfra.NewPurchaseConsumer(cfg.Kafka, orderService, logg)
	if err != nil {
		logg.Fatal("kafka consumer init failed", logger.Error(err))
	}
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logg.Warn("kafka consumer stopped", logger.Error(err))
		}
	}()
	defer consumer.Close()

	orderHandler := handler.NewOrderHandler(orderService, logg)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, orderHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		logg.Fatal("server run failed", logger.Error(err))
	}
}
