package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-triage-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// Hub owns all live session connections and is the delivery side of
// the event channel: one connection per session, frames pushed FIFO
// through each client's Send buffer, dropped when the session is gone.
type Hub struct {
	// Registered clients map: SessionID -> Client (one per session)
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery (optional)
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Session registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.SessionID]; ok && current == client {
				delete(h.clients, client.SessionID)
				close(client.Send)
				h.logger.Info("Hub", "Session unregistered", map[string]interface{}{"session_id": client.SessionID})
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a frame to one session if it is still connected;
// otherwise the frame is dropped. (EventDelivery interface implementation)
func (h *Hub) Send(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	client, localFound := h.clients[sessionID]
	h.mu.RUnlock()

	if localFound {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping session", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
		return
	}

	// Session may live on another instance.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionID.String(),
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

// Broadcast sends a frame to ALL connected sessions.
func (h *Hub) Broadcast(data []byte) {
	var stale []*Client
	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()
	for _, client := range stale {
		h.unregister <- client
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": "*", // Wildcard for broadcast
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

// subscribeToRedis handles frames published by other instances. Each
// instance delivers only to sessions it holds locally.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetSessionID == "*" {
			var stale []*Client
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- payload.Message:
				default:
					stale = append(stale, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range stale {
				h.unregister <- client
			}
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		client, ok := h.clients[sid]
		h.mu.RUnlock()

		if ok {
			select {
			case client.Send <- payload.Message:
			default:
				h.unregister <- client
			}
		}
	}
}
