package predictor

import (
	"context"
	"errors"
)

// ErrNoMatch is returned when the predictor cannot reach a diagnosis
// for the given concepts. Callers must treat this as a legitimate
// triage outcome (inconclusive), never as a pipeline fault.
var ErrNoMatch = errors.New("predictor: no diagnosis matched")

// Diagnosis is a single predicted condition, coded in the
// terminology system (SNOMED CT).
type Diagnosis struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Inconclusive is the sentinel diagnosis used when no prediction
// could be made.
func Inconclusive() Diagnosis {
	return Diagnosis{Code: "UNKNOWN", Name: "Inconclusive"}
}

// Predictor maps a set of normalized concept identifiers to exactly
// one Diagnosis.
type Predictor interface {
	Predict(ctx context.Context, concepts []string) (Diagnosis, error)
}
