package drug

import "context"

// StaticRecommender serves a fixed formulary keyed by diagnosis code.
// Default provider in development; deterministic stand-in for tests.
type StaticRecommender struct {
	formulary map[string][]Recommendation
}

var _ Recommender = &StaticRecommender{}

var defaultFormulary = map[string][]Recommendation{
	// Influenza
	"6142004": {
		{ID: "283742", Name: "Oseltamivir", Dosage: "75mg"},
	},
	// Common cold
	"82272006": {
		{ID: "161", Name: "Acetaminophen", Dosage: "500mg"},
	},
	// Migraine
	"37796009": {
		{ID: "5489", Name: "Sumatriptan", Dosage: "50mg"},
		{ID: "5640", Name: "Ibuprofen", Dosage: "400mg"},
	},
}

func NewStaticRecommender() *StaticRecommender {
	return &StaticRecommender{formulary: defaultFormulary}
}

func NewStaticRecommenderWithFormulary(formulary map[string][]Recommendation) *StaticRecommender {
	return &StaticRecommender{formulary: formulary}
}

func (r *StaticRecommender) Recommend(_ context.Context, diagnosisCode string) ([]Recommendation, error) {
	drugs, ok := r.formulary[diagnosisCode]
	if !ok {
		// Unknown diagnosis code: no recommendations, not a failure.
		return []Recommendation{}, nil
	}

	// Copy so callers cannot mutate the formulary.
	out := make([]Recommendation, len(drugs))
	copy(out, drugs)
	return out, nil
}
