// cmd/pizza-api/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"forno/internal/infrastructure/cache"
	"forno/internal/infrastructure/events"
	"forno/internal/infrastructure/persistence"
	httpiface "forno/internal/interfaces/http"
	"forno/internal/pkg/bootstrap"
	"forno/internal/pkg/logger"
	"forno/internal/pkg/mq"
	"forno/internal/service/inventory"
	"forno/internal/service/order/application"
	"forno/internal/service/pricing"
	"forno/internal/service/product"
	"forno/internal/service/promotion"
)

const serviceName = "pizza-api"

// main 是应用的组装根 (Composition Root)：
// 创建并组装所有依赖项，然后交给 bootstrap 启动。
func main() {
	if err := bootstrap.Init(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := bootstrap.GetCurrentConfig()

	// 1. 基础设施客户端
	db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&persistence.ProductModel{},
		&persistence.PriceModel{},
		&persistence.InventoryModel{},
		&persistence.PromotionModel{},
		&persistence.OrderModel{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Infra.Redis.Addr})
	kafkaWriter := mq.NewWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderTopic)

	tracer := otel.Tracer(serviceName)

	// 2. 仓储层
	productRepo := persistence.NewGormProductRepository(db)
	priceRepo := persistence.NewGormPriceRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	promoRepo := cache.NewCachedPromotionRepository(persistence.NewGormPromotionRepository(db), redisClient)
	orderRepo := persistence.NewGormOrderRepository(db)

	// 3. 业务服务
	productSvc := product.NewService(productRepo, inventoryRepo, priceRepo, tracer)
	inventorySvc := inventory.NewService(inventoryRepo, productRepo, tracer)
	pricingEngine := pricing.NewEngine(priceRepo, tracer)
	dispatcher := promotion.NewDispatcher(promoRepo, tracer)
	promoMgmt := promotion.NewManagementService(promoRepo, tracer)
	publisher := events.NewOrderPlacedProducer(kafkaWriter)

	orderSvc := application.NewOrderService(
		productSvc, inventorySvc, pricingEngine, dispatcher,
		orderRepo, publisher, tracer,
	)

	// 4. 接口层
	orderHandler := httpiface.NewOrderHandler(orderSvc, cache.NewIdempotencyStore(redisClient))
	productHandler := httpiface.NewProductHandler(productSvc)
	inventoryHandler := httpiface.NewInventoryHandler(inventorySvc)
	promotionHandler := httpiface.NewPromotionHandler(promoMgmt)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        cfg.App.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			orderHandler.Register(appCtx.Mux)
			productHandler.Register(appCtx.Mux)
			inventoryHandler.Register(appCtx.Mux)
			promotionHandler.Register(appCtx.Mux)
			appCtx.Mux.Handle("GET /metrics", promhttp.Handler())
			appCtx.Mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		},
		OnShutdown: func(ctx context.Context) {
			if err := publisher.Close(); err != nil {
				logger.Logger().Error().Err(err).Msg("failed to close kafka writer")
			}
			if err := redisClient.Close(); err != nil {
				logger.Logger().Error().Err(err).Msg("failed to close redis client")
			}
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	})
}
