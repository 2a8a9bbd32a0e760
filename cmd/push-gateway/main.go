// cmd/push-gateway/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"forno/internal/pkg/bootstrap"
	"forno/internal/pkg/logger"
	"forno/internal/pkg/mq"
	"forno/internal/push"
)

const (
	serviceName     = "push-gateway"
	consumerGroupID = "push-gateway-consumer-group"
)

// 推送网关：消费订单事件，把通知推送给保持 WebSocket 连接的用户。
func main() {
	if err := bootstrap.Init(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := bootstrap.GetCurrentConfig()

	hub := push.NewHub()
	reader := mq.NewReader(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderTopic, consumerGroupID)
	consumer := push.NewConsumer(reader, hub)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go hub.Run(consumerCtx)
	go func() {
		if err := consumer.Run(consumerCtx); err != nil {
			logger.Logger().Error().Err(err).Msg("consumer stopped")
		}
	}()

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        cfg.App.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			appCtx.Mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
				push.ServeWS(hub, w, r)
			})
			appCtx.Mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		},
		OnShutdown: func(ctx context.Context) {
			stopConsumer()
			if err := consumer.Close(); err != nil {
				logger.Logger().Error().Err(err).Msg("failed to close kafka reader")
			}
		},
	})
}
