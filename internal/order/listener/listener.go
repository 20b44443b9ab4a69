package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kegflow/kegflow-stock-service/internal/model"
	"github.com/kegflow/kegflow-stock-service/internal/order"
	"github.com/kegflow/kegflow-stock-service/pkg/broker"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"go.uber.org/zap"
)

// DeliveryListener applies driver-app delivery events to order status.
type DeliveryListener struct {
	consumer *broker.KafkaConsumer
	uc       order.UseCase
	logger   logger.ZapLogger
}

func NewDeliveryListener(consumer *broker.KafkaConsumer, uc order.UseCase, logger logger.ZapLogger) *DeliveryListener {
	return &DeliveryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *DeliveryListener) Start(ctx context.Context) {
	l.logger.Info("Starting delivery Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping delivery Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type DeliveryStatusEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   DeliveryPayload `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type DeliveryPayload struct {
	OrderID   string `json:"order_id"`
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
}

func (l *DeliveryListener) processMessage(ctx context.Context, value []byte) {
	var event DeliveryStatusEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "DeliveryStatusChanged" {
		return
	}

	status := model.OrderStatus(event.Payload.Status)
	if !status.Valid() {
		l.logger.Warn("Ignoring event with unknown order status",
			zap.String("order_id", event.Payload.OrderID),
			zap.String("status", event.Payload.Status),
		)
		return
	}

	l.logger.Info("Processing DeliveryStatusChanged event",
		zap.String("order_id", event.Payload.OrderID),
		zap.String("status", event.Payload.Status),
	)

	err := l.uc.UpdateOrderStatus(ctx, event.Payload.CompanyID, event.Payload.OrderID, status)
	if err != nil {
		l.logger.Error("Failed to apply delivery status",
			zap.String("order_id", event.Payload.OrderID),
			zap.Error(err),
		)
	}
}
