package terminology

import (
	"context"
	"strings"
)

// StaticMapper resolves symptoms against a built-in SNOMED CT table.
// Used as the default provider in development and as a deterministic
// stand-in for tests. Unrecognized terms are silently skipped.
type StaticMapper struct {
	table map[string]string
}

var _ Mapper = &StaticMapper{}

// defaultConceptTable covers the common triage vocabulary.
var defaultConceptTable = map[string]string{
	"fever":           "386661006",
	"cough":           "49727002",
	"headache":        "25064002",
	"sore throat":     "162397003",
	"fatigue":         "84229001",
	"nausea":          "422587007",
	"runny nose":      "64531003",
	"muscle pain":     "68962001",
	"chills":          "43724002",
	"short of breath": "267036007",
}

func NewStaticMapper() *StaticMapper {
	return &StaticMapper{table: defaultConceptTable}
}

// NewStaticMapperWithTable allows tests to inject their own vocabulary.
func NewStaticMapperWithTable(table map[string]string) *StaticMapper {
	return &StaticMapper{table: table}
}

func (m *StaticMapper) Map(_ context.Context, symptoms []string) ([]string, error) {
	concepts := make([]string, 0, len(symptoms))
	seen := make(map[string]bool)

	for _, symptom := range symptoms {
		key := strings.ToLower(strings.TrimSpace(symptom))
		code, ok := m.table[key]
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		concepts = append(concepts, code)
	}

	return concepts, nil
}
