package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PrescriptionStatusAccepted = "ACCEPTED"
)

// Prescription stores an accepted analysis result. Drugs and
// interactions keep the exact ordered payload the client accepted.
type Prescription struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_prescriptions_session" json:"session_id"`
	DiagnosisCode string         `gorm:"type:varchar(50);not null" json:"diagnosis_code"`
	DiagnosisName string         `gorm:"type:varchar(200);not null" json:"diagnosis_name"`
	Drugs         datatypes.JSON `gorm:"type:jsonb;not null" json:"drugs"`
	Interactions  datatypes.JSON `gorm:"type:jsonb;not null" json:"interactions"`
	Status        string         `gorm:"type:varchar(20);not null;default:'ACCEPTED'" json:"status"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
