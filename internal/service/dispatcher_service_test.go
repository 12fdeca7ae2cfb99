package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-triage-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu     sync.Mutex
	frames map[uuid.UUID][][]byte
}

func newRecordingDelivery() *recordingDelivery {
	return &recordingDelivery{frames: make(map[uuid.UUID][][]byte)}
}

func (d *recordingDelivery) Send(sessionID uuid.UUID, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames[sessionID] = append(d.frames[sessionID], data)
}

func (d *recordingDelivery) Broadcast([]byte) {}

func (d *recordingDelivery) count(sessionID uuid.UUID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames[sessionID])
}

func (d *recordingDelivery) get(sessionID uuid.UUID) [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.frames[sessionID]))
	copy(out, d.frames[sessionID])
	return out
}

func newBusAndDispatcher(t *testing.T, delivery EventDelivery) (IEventPublisher, context.CancelFunc) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ctx, cancel := context.WithCancel(context.Background())

	dispatcher := NewDispatcherService(pubSub, "test-session-events", delivery, nopLogger{})
	require.NoError(t, dispatcher.Dispatch(ctx))

	return NewEventPublisherService("test-session-events", pubSub), cancel
}

func TestDispatchPreservesOrder(t *testing.T) {
	delivery := newRecordingDelivery()
	publisher, cancel := newBusAndDispatcher(t, delivery)
	defer cancel()

	sessionID := uuid.New()
	const total = 20
	for i := 0; i < total; i++ {
		envelope := dto.Envelope{
			Type: dto.MessageTypeProgress,
			Data: dto.ProgressPayload{Step: i, Message: fmt.Sprintf("step %d", i)},
		}
		require.NoError(t, publisher.PublishSessionEvent(sessionID, envelope))
	}

	require.Eventually(t, func() bool {
		return delivery.count(sessionID) == total
	}, 2*time.Second, 10*time.Millisecond)

	for i, frame := range delivery.get(sessionID) {
		var envelope struct {
			Type string `json:"type"`
			Data struct {
				Step int `json:"step"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(frame, &envelope))
		assert.Equal(t, dto.MessageTypeProgress, envelope.Type)
		assert.Equal(t, i, envelope.Data.Step, "frames must arrive in emission order")
	}
}

func TestDispatchRoutesBySession(t *testing.T) {
	delivery := newRecordingDelivery()
	publisher, cancel := newBusAndDispatcher(t, delivery)
	defer cancel()

	first := uuid.New()
	second := uuid.New()

	require.NoError(t, publisher.PublishSessionEvent(first, dto.Envelope{
		Type: dto.MessageTypeError,
		Data: dto.ErrorPayload{Message: "boom", Stage: "normalizing"},
	}))
	require.NoError(t, publisher.PublishSessionEvent(second, dto.Envelope{
		Type: dto.MessageTypeProgress,
		Data: dto.ProgressPayload{Step: 1, Message: "normalizing symptoms"},
	}))

	require.Eventually(t, func() bool {
		return delivery.count(first) == 1 && delivery.count(second) == 1
	}, 2*time.Second, 10*time.Millisecond)

	var errEnvelope dto.Envelope
	require.NoError(t, json.Unmarshal(delivery.get(first)[0], &errEnvelope))
	assert.Equal(t, dto.MessageTypeError, errEnvelope.Type)
}
