// internal/push/consumer.go
package push

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"forno/internal/pkg/logger"
	"forno/internal/pkg/mq"
	"forno/internal/service/order/domain"
)

// Consumer 消费订单事件并推送给在线的下单用户。
type Consumer struct {
	reader *kafka.Reader
	hub    *Hub
}

func NewConsumer(reader *kafka.Reader, hub *Hub) *Consumer {
	return &Consumer{reader: reader, hub: hub}
}

// Run 循环消费消息直到 ctx 被取消。
// 消息先投递再提交位点；投递失败（用户不在线）不会阻止提交，
// 离线用户的通知直接丢弃。
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Ctx(ctx).Error().Err(err).Msg("could not fetch message")
			continue
		}

		msgCtx := mq.ExtractTraceContext(ctx, &msg)
		c.deliver(msgCtx, &msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Ctx(msgCtx).Error().Err(err).Msg("could not commit message")
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, msg *kafka.Message) {
	var event domain.OrderPlaced
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("dropping malformed order event")
		return
	}

	userID := event.OwnerID.String()
	if c.hub.Deliver(userID, msg.Value) {
		logger.Ctx(ctx).Info().
			Str("user_id", userID).
			Str("order_id", event.OrderID.String()).
			Msg("order notification pushed")
	} else {
		logger.Ctx(ctx).Debug().
			Str("user_id", userID).
			Msg("user offline, notification dropped")
	}
}

// Close 关闭底层 reader。
func (c *Consumer) Close() error {
	return c.reader.Close()
}
