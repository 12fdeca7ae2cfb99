package contract

import (
	"context"

	"ai-triage-be/internal/entity"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Prescription, int64, error)
}
