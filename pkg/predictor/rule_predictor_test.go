package predictor

import (
	"context"
	"errors"
	"testing"
)

func TestRulePredictorMatches(t *testing.T) {
	p := NewRulePredictor()

	tests := []struct {
		name     string
		concepts []string
		wantCode string
		wantName string
	}{
		{"influenza", []string{"386661006", "49727002"}, "6142004", "Influenza"},
		{"influenza with extra concepts", []string{"84229001", "386661006", "49727002"}, "6142004", "Influenza"},
		{"migraine", []string{"25064002", "422587007"}, "37796009", "Migraine"},
		{"common cold", []string{"64531003", "162397003"}, "82272006", "Common cold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Predict(context.Background(), tt.concepts)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if got.Code != tt.wantCode || got.Name != tt.wantName {
				t.Errorf("Predict = {%s %s}, want {%s %s}", got.Code, got.Name, tt.wantCode, tt.wantName)
			}
			if got.Confidence == nil {
				t.Error("rule diagnoses should carry a confidence")
			}
		})
	}
}

func TestRulePredictorNoMatch(t *testing.T) {
	p := NewRulePredictor()

	tests := []struct {
		name     string
		concepts []string
	}{
		{"empty", nil},
		{"partial rule", []string{"386661006"}},
		{"unknown concepts", []string{"999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Predict(context.Background(), tt.concepts)
			if !errors.Is(err, ErrNoMatch) {
				t.Errorf("err = %v, want ErrNoMatch", err)
			}
		})
	}
}

func TestInconclusiveSentinel(t *testing.T) {
	d := Inconclusive()
	if d.Code != "UNKNOWN" || d.Name != "Inconclusive" {
		t.Errorf("Inconclusive() = {%s %s}", d.Code, d.Name)
	}
	if d.Confidence != nil {
		t.Error("Inconclusive carries no confidence")
	}
}
