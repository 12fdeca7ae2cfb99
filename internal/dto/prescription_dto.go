package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePrescriptionRequest persists an accepted analysis result.
// The payload mirrors the result event the client received.
type CreatePrescriptionRequest struct {
	SessionID    uuid.UUID            `json:"session_id"`
	Diagnosis    DiagnosisPayload     `json:"diagnosis"`
	Drugs        []DrugPayload        `json:"drugs"`
	Interactions []InteractionPayload `json:"interactions"`
}

type CreatePrescriptionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowPrescriptionResponse struct {
	Id           uuid.UUID            `json:"id"`
	SessionID    uuid.UUID            `json:"session_id"`
	Diagnosis    DiagnosisPayload     `json:"diagnosis"`
	Drugs        []DrugPayload        `json:"drugs"`
	Interactions []InteractionPayload `json:"interactions"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

type ListPrescriptionsResponse struct {
	Items []ShowPrescriptionResponse `json:"items"`
	Total int64                      `json:"total"`
}
