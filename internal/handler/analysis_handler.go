package handler

import (
	"encoding/json"
	"os"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/pkg/logger"
	"ai-triage-be/internal/repository/memory"
	"ai-triage-be/internal/service"
	internalWS "ai-triage-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AnalysisHandler owns the session channel: it upgrades the
// connection, binds it to a fresh session, and routes inbound
// analyze submissions into the pipeline.
type AnalysisHandler struct {
	analysis  service.IAnalysisService
	registry  *memory.SessionRegistry
	publisher service.IEventPublisher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewAnalysisHandler(
	analysis service.IAnalysisService,
	registry *memory.SessionRegistry,
	publisher service.IEventPublisher,
	hub *internalWS.Hub,
	log logger.ILogger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:  analysis,
		registry:  registry,
		publisher: publisher,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *AnalysisHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("AnalysisHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			sessionID := h.registry.Open()
			h.logger.Info("AnalysisHandler", "Session opened", map[string]interface{}{"session_id": sessionID})

			hello, _ := json.Marshal(dto.Envelope{
				Type: dto.MessageTypeSession,
				Data: dto.SessionPayload{SessionID: sessionID},
			})

			internalWS.ServeWs(h.hub, conn, sessionID, hello, h.handleMessage)

			// Connection gone: cancel any in-flight pipeline.
			h.registry.Close(sessionID)
			h.logger.Info("AnalysisHandler", "Session closed", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// handleMessage routes one inbound frame. Registry rejections never
// start a pipeline; they come back as an immediate error event on the
// same session.
func (h *AnalysisHandler) handleMessage(sessionID uuid.UUID, data []byte) {
	var msg dto.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.pushError(sessionID, "malformed message: expected {type, data}")
		return
	}

	switch msg.Type {
	case dto.MessageTypeAnalyze:
		var req dto.AnalyzeRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.pushError(sessionID, service.ErrInvalidRequest.Error())
			return
		}
		if err := h.analysis.Analyze(sessionID, &req); err != nil {
			h.pushError(sessionID, err.Error())
		}

	default:
		h.logger.Warn("AnalysisHandler", "Unknown message type", map[string]interface{}{
			"session_id": sessionID,
			"type":       msg.Type,
		})
	}
}

func (h *AnalysisHandler) pushError(sessionID uuid.UUID, message string) {
	err := h.publisher.PublishSessionEvent(sessionID, dto.Envelope{
		Type: dto.MessageTypeError,
		Data: dto.ErrorPayload{Message: message, Stage: ""},
	})
	if err != nil {
		h.logger.Error("AnalysisHandler", "Failed to push rejection", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *AnalysisHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
