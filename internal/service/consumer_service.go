// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-be/internal/pkg/logger"
	"portfolio-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships events off the process, e.g. to NATS.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	auditLog   logger.ILogger
	logger     logger.ILogger
}

// NewConsumerService drains contact events from the in-process bus into the
// audit log and, when forwarder is not nil, onto the external bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	auditLog logger.ILogger,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		auditLog:   auditLog,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Always Ack: gochannel redelivers a Nack immediately and forever.
	defer msg.Ack()

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err.Error(),
		})
		return
	}

	eventType := msg.Metadata.Get("event_type")
	cs.auditLog.Info("EVENTS", eventType, payload)

	if cs.forwarder == nil {
		return
	}

	evt := events.BaseEvent{Type: eventType, Data: payload, OccurredAt: time.Now()}
	fwdCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cs.forwarder.Publish(fwdCtx, evt); err != nil {
		cs.logger.Error("EVENTS", "Failed to forward event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
