package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestStageOrder(t *testing.T) {
	exec := NewPipelineExecution(uuid.New())

	want := []Stage{StageNormalizing, StageDiagnosing, StageRecommending, StageValidating, StageDone}
	for i, stage := range want {
		if exec.Stage != stage {
			t.Fatalf("position %d: stage = %s, want %s", i, exec.Stage, stage)
		}
		if stage == StageDone {
			break
		}
		if err := exec.Advance(); err != nil {
			t.Fatalf("Advance from %s: %v", stage, err)
		}
	}

	if !exec.Stage.Terminal() {
		t.Errorf("Done should be terminal")
	}
	if err := exec.Advance(); err == nil {
		t.Errorf("Advance from Done should fail")
	}
	if err := exec.Fail(); err == nil {
		t.Errorf("Fail after terminal should be rejected")
	}
}

func TestStageFail(t *testing.T) {
	exec := NewPipelineExecution(uuid.New())
	if err := exec.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if err := exec.Fail(); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if exec.Stage != StageFailed {
		t.Errorf("Stage = %s, want failed", exec.Stage)
	}
	if err := exec.Fail(); err == nil {
		t.Errorf("second Fail should be rejected")
	}
	if err := exec.Advance(); err == nil {
		t.Errorf("Advance from Failed should fail")
	}
}

func TestStageSteps(t *testing.T) {
	tests := []struct {
		stage    Stage
		wantStep int
		wantName string
	}{
		{StageNormalizing, 1, "normalizing"},
		{StageDiagnosing, 2, "diagnosing"},
		{StageRecommending, 3, "recommending"},
		{StageValidating, 4, "validating"},
		{StageDone, 0, "done"},
		{StageFailed, 0, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if got := tt.stage.Step(); got != tt.wantStep {
				t.Errorf("Step() = %d, want %d", got, tt.wantStep)
			}
			if got := tt.stage.String(); got != tt.wantName {
				t.Errorf("String() = %q, want %q", got, tt.wantName)
			}
			if tt.wantStep > 0 && tt.stage.ProgressMessage() == "" {
				t.Errorf("ProgressMessage() empty for %s", tt.stage)
			}
		})
	}
}
