package service

import (
	"encoding/json"

	"ai-triage-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IEventPublisher pushes one session-addressed envelope onto the
// internal event bus. Delivery to the client is the dispatcher's job;
// publishing never blocks on a slow websocket.
type IEventPublisher interface {
	PublishSessionEvent(sessionID uuid.UUID, envelope dto.Envelope) error
}

type eventPublisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewEventPublisherService(topicName string, pubSub *gochannel.GoChannel) IEventPublisher {
	return &eventPublisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *eventPublisherService) PublishSessionEvent(sessionID uuid.UUID, envelope dto.Envelope) error {
	payload, err := json.Marshal(dto.AnalysisEventMessage{
		SessionID: sessionID,
		Envelope:  envelope,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}
