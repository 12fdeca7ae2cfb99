package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Envelope wraps every message sent to the client over the session
// channel: {"type": "...", "data": {...}}.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Message type codes on the session channel.
const (
	MessageTypeSession  = "session"
	MessageTypeAnalyze  = "analyze"
	MessageTypeProgress = "progress"
	MessageTypeResult   = "result"
	MessageTypeError    = "error"
	MessageTypeNotice   = "notice"
)

// ClientMessage is the inbound frame from the client. Data stays raw
// until the type is known.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type AnalyzeRequest struct {
	Symptoms []string `json:"symptoms"`
}

type SessionPayload struct {
	SessionID uuid.UUID `json:"session_id"`
}

type ProgressPayload struct {
	Step    int    `json:"step"`
	Message string `json:"message"`
}

type DiagnosisPayload struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type DrugPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type InteractionPayload struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type ResultPayload struct {
	Diagnosis    DiagnosisPayload     `json:"diagnosis"`
	Drugs        []DrugPayload        `json:"drugs"`
	Interactions []InteractionPayload `json:"interactions"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Stage   string `json:"stage"`
}

// AnalysisEventMessage is the payload carried on the internal event
// bus between the pipeline and the websocket dispatcher.
type AnalysisEventMessage struct {
	SessionID uuid.UUID `json:"session_id"`
	Envelope  Envelope  `json:"envelope"`
}
