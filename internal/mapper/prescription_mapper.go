package mapper

import (
	"encoding/json"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/entity"
)

func ToShowPrescriptionResponse(p *entity.Prescription) (*dto.ShowPrescriptionResponse, error) {
	drugs := []dto.DrugPayload{}
	if len(p.Drugs) > 0 {
		if err := json.Unmarshal(p.Drugs, &drugs); err != nil {
			return nil, err
		}
	}

	interactions := []dto.InteractionPayload{}
	if len(p.Interactions) > 0 {
		if err := json.Unmarshal(p.Interactions, &interactions); err != nil {
			return nil, err
		}
	}

	return &dto.ShowPrescriptionResponse{
		Id:        p.Id,
		SessionID: p.SessionId,
		Diagnosis: dto.DiagnosisPayload{
			Code: p.DiagnosisCode,
			Name: p.DiagnosisName,
		},
		Drugs:        drugs,
		Interactions: interactions,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}, nil
}
