package drug

import "context"

// Recommendation is one drug suggestion for a diagnosis.
// ID is the drug-coding-system identifier (RxNorm CUI).
type Recommendation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

// Recommender returns drug suggestions for a diagnosis code,
// ordered by relevance. The order must be preserved by callers.
type Recommender interface {
	// Recommend may return an empty list; that is a valid outcome.
	Recommend(ctx context.Context, diagnosisCode string) ([]Recommendation, error)
}
