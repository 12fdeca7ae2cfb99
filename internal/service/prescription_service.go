package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/entity"
	"ai-triage-be/internal/mapper"
	"ai-triage-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrPrescriptionNotFound = errors.New("prescription not found")

type IPrescriptionService interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowPrescriptionResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.ListPrescriptionsResponse, error)
}

type prescriptionService struct {
	repo contract.PrescriptionRepository
}

func NewPrescriptionService(repo contract.PrescriptionRepository) IPrescriptionService {
	return &prescriptionService{repo: repo}
}

func (s *prescriptionService) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	if req.Diagnosis.Code == "" {
		return nil, errors.New("diagnosis code is required")
	}

	drugs := req.Drugs
	if drugs == nil {
		drugs = []dto.DrugPayload{}
	}
	interactions := req.Interactions
	if interactions == nil {
		interactions = []dto.InteractionPayload{}
	}

	drugsJSON, err := json.Marshal(drugs)
	if err != nil {
		return nil, err
	}
	interactionsJSON, err := json.Marshal(interactions)
	if err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		Id:            uuid.New(),
		SessionId:     req.SessionID,
		DiagnosisCode: req.Diagnosis.Code,
		DiagnosisName: req.Diagnosis.Name,
		Drugs:         datatypes.JSON(drugsJSON),
		Interactions:  datatypes.JSON(interactionsJSON),
		Status:        entity.PrescriptionStatusAccepted,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	return &dto.CreatePrescriptionResponse{Id: prescription.Id}, nil
}

func (s *prescriptionService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowPrescriptionResponse, error) {
	prescription, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return mapper.ToShowPrescriptionResponse(prescription)
}

func (s *prescriptionService) List(ctx context.Context, limit, offset int) (*dto.ListPrescriptionsResponse, error) {
	prescriptions, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ShowPrescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		item, err := mapper.ToShowPrescriptionResponse(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return &dto.ListPrescriptionsResponse{Items: items, Total: total}, nil
}
