package interaction

import "context"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Interaction describes one known drug-drug interaction.
type Interaction struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Checker looks up known interactions between the given drugs.
// An empty result means "no known interactions" and is distinct
// from a failed check, which is reported as an error.
type Checker interface {
	Check(ctx context.Context, drugIDs []string) ([]Interaction, error)
}
