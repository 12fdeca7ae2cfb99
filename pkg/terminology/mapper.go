package terminology

import "context"

// Mapper normalizes free-text symptom descriptions into standardized
// concept identifiers (SNOMED CT codes).
type Mapper interface {
	// Map returns the concept identifiers for the given symptoms.
	// An empty result is valid: it means no term was recognized.
	Map(ctx context.Context, symptoms []string) ([]string, error)
}
