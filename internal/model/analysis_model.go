package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage is one step of the analysis pipeline. The order is fixed:
// Normalizing < Diagnosing < Recommending < Validating < {Done|Failed}.
type Stage int

const (
	StageNormalizing Stage = iota + 1
	StageDiagnosing
	StageRecommending
	StageValidating
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageNormalizing:  "normalizing",
	StageDiagnosing:   "diagnosing",
	StageRecommending: "recommending",
	StageValidating:   "validating",
	StageDone:         "done",
	StageFailed:       "failed",
}

// stageTransitions is the only legal forward move per stage.
// Everything else is rejected by Advance.
var stageTransitions = map[Stage]Stage{
	StageNormalizing:  StageDiagnosing,
	StageDiagnosing:   StageRecommending,
	StageRecommending: StageValidating,
	StageValidating:   StageDone,
}

var stageMessages = map[Stage]string{
	StageNormalizing:  "Normalizing symptoms to clinical concepts",
	StageDiagnosing:   "Evaluating diagnosis",
	StageRecommending: "Retrieving drug recommendations",
	StageValidating:   "Checking drug interactions",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Step is the 1-based position in the fixed sequence, 0 for
// terminal states.
func (s Stage) Step() int {
	switch s {
	case StageNormalizing, StageDiagnosing, StageRecommending, StageValidating:
		return int(s)
	default:
		return 0
	}
}

// ProgressMessage is the fixed human-readable text pushed to the
// client when the stage begins.
func (s Stage) ProgressMessage() string {
	return stageMessages[s]
}

func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// PipelineExecution is one in-flight analysis. At most one exists
// per session at any time; the registry enforces that.
type PipelineExecution struct {
	SessionID uuid.UUID
	Stage     Stage
	StartedAt time.Time
}

func NewPipelineExecution(sessionID uuid.UUID) *PipelineExecution {
	return &PipelineExecution{
		SessionID: sessionID,
		Stage:     StageNormalizing,
		StartedAt: time.Now(),
	}
}

// Advance moves to the next stage in the fixed order. Moving out of
// a terminal state, or skipping ahead, is a programming error.
func (e *PipelineExecution) Advance() error {
	next, ok := stageTransitions[e.Stage]
	if !ok {
		return fmt.Errorf("no transition from stage %s", e.Stage)
	}
	e.Stage = next
	return nil
}

// Fail marks the execution failed. A terminal execution cannot fail
// again; exactly one terminal state is ever reached.
func (e *PipelineExecution) Fail() error {
	if e.Stage.Terminal() {
		return fmt.Errorf("execution already terminal at stage %s", e.Stage)
	}
	e.Stage = StageFailed
	return nil
}
