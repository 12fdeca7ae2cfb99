package service

import (
	"context"
	"encoding/json"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// EventDelivery pushes raw frames to connected clients.
// Implemented by the websocket Hub.
type EventDelivery interface {
	Send(sessionID uuid.UUID, data []byte)
	Broadcast(data []byte)
}

type IDispatcherService interface {
	// Dispatch subscribes to the session-event topic and forwards
	// each envelope to its session. A single consumer goroutine keeps
	// per-session delivery in emission order.
	Dispatch(ctx context.Context) error
}

type dispatcherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  EventDelivery
	logger    logger.ILogger
}

func NewDispatcherService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery EventDelivery,
	log logger.ILogger,
) IDispatcherService {
	return &dispatcherService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

func (ds *dispatcherService) Dispatch(ctx context.Context) error {
	messages, err := ds.pubSub.Subscribe(ctx, ds.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ds.processMessage(msg)
		}
	}()

	return nil
}

func (ds *dispatcherService) processMessage(msg *message.Message) {
	var event dto.AnalysisEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		ds.logger.Error("DispatcherService", "Failed to unmarshal event message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Malformed messages are never retriable
		return
	}

	data, err := json.Marshal(event.Envelope)
	if err != nil {
		ds.logger.Error("DispatcherService", "Failed to marshal envelope", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	// Disconnected sessions drop the frame inside Send.
	ds.delivery.Send(event.SessionID, data)
	msg.Ack()
}
