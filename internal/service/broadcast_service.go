package service

import (
	"context"
	"encoding/json"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/pkg/logger"
	"ai-triage-be/pkg/events"
	pktNats "ai-triage-be/pkg/nats"
)

// BroadcastService relays operator announcements from the NATS bus to
// every connected session (maintenance windows, service notices).
type BroadcastService struct {
	subscriber *pktNats.Subscriber
	delivery   EventDelivery
	logger     logger.ILogger
}

func NewBroadcastService(sub *pktNats.Subscriber, delivery EventDelivery, log logger.ILogger) *BroadcastService {
	return &BroadcastService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *BroadcastService) Start() {
	err := s.subscriber.Subscribe("events."+events.TypeSystemBroadcast, "triage-broadcast-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("BroadcastService", "Failed to start broadcast subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("BroadcastService", "Broadcast service started", nil)
}

func (s *BroadcastService) handleEvent(_ context.Context, event events.Event) error {
	data, err := json.Marshal(dto.Envelope{
		Type: dto.MessageTypeNotice,
		Data: event.Payload(),
	})
	if err != nil {
		return err
	}

	s.delivery.Broadcast(data)
	s.logger.Info("BroadcastService", "Broadcast delivered", map[string]interface{}{
		"type": event.EventType(),
	})
	return nil
}
