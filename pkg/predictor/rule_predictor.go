package predictor

import "context"

// rule fires when every one of its concepts is present.
type rule struct {
	concepts  []string
	diagnosis Diagnosis
}

// RulePredictor is a deterministic predictor backed by a fixed rule
// table. Rules are evaluated in order; the first full match wins, so
// more specific rules must come first.
type RulePredictor struct {
	rules []rule
}

var _ Predictor = &RulePredictor{}

func confidence(v float64) *float64 {
	return &v
}

func NewRulePredictor() *RulePredictor {
	return &RulePredictor{
		rules: []rule{
			{
				// fever + cough
				concepts:  []string{"386661006", "49727002"},
				diagnosis: Diagnosis{Code: "6142004", Name: "Influenza", Confidence: confidence(0.85)},
			},
			{
				// headache + nausea
				concepts:  []string{"25064002", "422587007"},
				diagnosis: Diagnosis{Code: "37796009", Name: "Migraine", Confidence: confidence(0.7)},
			},
			{
				// runny nose + sore throat
				concepts:  []string{"64531003", "162397003"},
				diagnosis: Diagnosis{Code: "82272006", Name: "Common cold", Confidence: confidence(0.75)},
			},
		},
	}
}

func (p *RulePredictor) Predict(_ context.Context, concepts []string) (Diagnosis, error) {
	present := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		present[c] = true
	}

	for _, r := range p.rules {
		matched := true
		for _, c := range r.concepts {
			if !present[c] {
				matched = false
				break
			}
		}
		if matched {
			return r.diagnosis, nil
		}
	}

	return Diagnosis{}, ErrNoMatch
}
