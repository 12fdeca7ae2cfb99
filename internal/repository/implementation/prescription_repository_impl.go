package implementation

import (
	"context"
	"errors"

	"ai-triage-be/internal/entity"
	"ai-triage-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) contract.PrescriptionRepository {
	return &PrescriptionRepositoryImpl{db: db}
}

func (r *PrescriptionRepositoryImpl) Create(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *PrescriptionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *PrescriptionRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.Prescription, int64, error) {
	var prescriptions []*entity.Prescription
	var total int64

	db := r.db.WithContext(ctx).Model(&entity.Prescription{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prescriptions).Error

	return prescriptions, total, err
}
