package interaction

import "context"

// pairKey is an unordered drug ID pair.
type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// StaticChecker serves a fixed pairwise interaction table.
// Default provider in development; deterministic stand-in for tests.
type StaticChecker struct {
	pairs map[pairKey]Interaction
}

var _ Checker = &StaticChecker{}

func NewStaticChecker() *StaticChecker {
	c := &StaticChecker{pairs: make(map[pairKey]Interaction)}
	// Sumatriptan + Ibuprofen is harmless; seed a couple of known risky pairs.
	c.addPair("283742", "11289", Interaction{
		Severity:    SeverityMedium,
		Description: "Oseltamivir may alter warfarin response; monitor INR.",
	})
	c.addPair("5640", "11289", Interaction{
		Severity:    SeverityHigh,
		Description: "Ibuprofen with warfarin increases bleeding risk.",
	})
	return c
}

func (c *StaticChecker) addPair(x, y string, i Interaction) {
	c.pairs[newPairKey(x, y)] = i
}

func (c *StaticChecker) Check(_ context.Context, drugIDs []string) ([]Interaction, error) {
	found := []Interaction{}
	for i := 0; i < len(drugIDs); i++ {
		for j := i + 1; j < len(drugIDs); j++ {
			if hit, ok := c.pairs[newPairKey(drugIDs[i], drugIDs[j])]; ok {
				found = append(found, hit)
			}
		}
	}
	return found, nil
}
