package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"empower-commerce-be/internal/pkg/logger"
	"empower-commerce-be/pkg/events"
	pkgNats "empower-commerce-be/pkg/nats"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

// publisherService fans dialogue events out to the in-process bus and, when
// connected, mirrors them to NATS. Both paths are fire-and-forget; event
// delivery never fails a turn.
type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	natsPub   *pkgNats.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, natsPub *pkgNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		natsPub:   natsPub,
		logger:    log,
	}
}

type eventEnvelope struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(eventEnvelope{Type: event.EventType(), Data: event.Payload()})
	if err != nil {
		s.logger.Error("publisher", "Failed to marshal event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("publisher", "In-process publish failed", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Warn("publisher", "NATS publish failed", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		}
	}
}
