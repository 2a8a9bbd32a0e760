// internal/infrastructure/events/order_producer.go
package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"forno/internal/pkg/mq"
	"forno/internal/service/order/domain"
)

// OrderPlacedProducer 把订单事件发布到 Kafka，供推送网关等下游消费。
type OrderPlacedProducer struct {
	writer *kafka.Writer
}

func NewOrderPlacedProducer(writer *kafka.Writer) *OrderPlacedProducer {
	return &OrderPlacedProducer{writer: writer}
}

// PublishOrderPlaced 以 ownerId 作为分区键发布事件，
// 保证同一个用户的事件有序。
func (p *OrderPlacedProducer) PublishOrderPlaced(ctx context.Context, event *domain.OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return mq.ProduceMessage(ctx, p.writer, []byte(event.OwnerID.String()), payload)
}

// Close 关闭底层 writer。
func (p *OrderPlacedProducer) Close() error {
	return p.writer.Close()
}
