package mapper

import (
	"ai-triage-be/internal/dto"
	"ai-triage-be/pkg/drug"
	"ai-triage-be/pkg/interaction"
	"ai-triage-be/pkg/predictor"
)

func ToDiagnosisPayload(d predictor.Diagnosis) dto.DiagnosisPayload {
	return dto.DiagnosisPayload{
		Code:       d.Code,
		Name:       d.Name,
		Confidence: d.Confidence,
	}
}

func ToDrugPayloads(drugs []drug.Recommendation) []dto.DrugPayload {
	// Keep adapter ranking order; never nil so JSON stays [].
	out := make([]dto.DrugPayload, 0, len(drugs))
	for _, d := range drugs {
		out = append(out, dto.DrugPayload{
			ID:     d.ID,
			Name:   d.Name,
			Dosage: d.Dosage,
		})
	}
	return out
}

func ToInteractionPayloads(interactions []interaction.Interaction) []dto.InteractionPayload {
	out := make([]dto.InteractionPayload, 0, len(interactions))
	for _, i := range interactions {
		out = append(out, dto.InteractionPayload{
			Severity:    string(i.Severity),
			Description: i.Description,
		})
	}
	return out
}

func ToResultPayload(d predictor.Diagnosis, drugs []drug.Recommendation, interactions []interaction.Interaction) dto.ResultPayload {
	return dto.ResultPayload{
		Diagnosis:    ToDiagnosisPayload(d),
		Drugs:        ToDrugPayloads(drugs),
		Interactions: ToInteractionPayloads(interactions),
	}
}
