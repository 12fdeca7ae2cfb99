package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-triage-be/internal/dto"
	"ai-triage-be/internal/mapper"
	"ai-triage-be/internal/model"
	"ai-triage-be/internal/pkg/logger"
	"ai-triage-be/internal/repository/memory"
	"ai-triage-be/pkg/drug"
	"ai-triage-be/pkg/events"
	"ai-triage-be/pkg/interaction"
	pktNats "ai-triage-be/pkg/nats"
	"ai-triage-be/pkg/predictor"
	"ai-triage-be/pkg/terminology"

	"github.com/google/uuid"
)

// ErrInvalidRequest rejects a submission whose symptom list is empty.
// Checked before any adapter is touched.
var ErrInvalidRequest = errors.New("analysis: symptoms must be a non-empty list of strings")

type IAnalysisService interface {
	// Analyze validates and starts one pipeline execution for the
	// session. It returns immediately; progress and the terminal
	// event arrive on the session channel. Rejections
	// (ErrInvalidRequest, memory.ErrUnknownSession,
	// memory.ErrAlreadyRunning) are returned synchronously and no
	// pipeline is started.
	Analyze(sessionID uuid.UUID, req *dto.AnalyzeRequest) error
}

type analysisService struct {
	registry    *memory.SessionRegistry
	mapper      terminology.Mapper
	predictor   predictor.Predictor
	recommender drug.Recommender
	checker     interaction.Checker
	publisher   IEventPublisher
	natsPub     *pktNats.Publisher
	logger      logger.ILogger
}

func NewAnalysisService(
	registry *memory.SessionRegistry,
	termMapper terminology.Mapper,
	diagPredictor predictor.Predictor,
	recommender drug.Recommender,
	checker interaction.Checker,
	publisher IEventPublisher,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		registry:    registry,
		mapper:      termMapper,
		predictor:   diagPredictor,
		recommender: recommender,
		checker:     checker,
		publisher:   publisher,
		natsPub:     natsPub,
		logger:      log,
	}
}

// pipelineState accumulates stage outputs across one execution.
type pipelineState struct {
	symptoms     []string
	concepts     []string
	diagnosis    predictor.Diagnosis
	drugs        []drug.Recommendation
	interactions []interaction.Interaction
}

func (s *analysisService) Analyze(sessionID uuid.UUID, req *dto.AnalyzeRequest) error {
	symptoms := cleanSymptoms(req.Symptoms)
	if len(symptoms) == 0 {
		return ErrInvalidRequest
	}

	ctx, exec, err := s.registry.Begin(sessionID)
	if err != nil {
		return err
	}

	s.logger.Info("AnalysisService", "Pipeline started", map[string]interface{}{
		"session_id": sessionID,
		"symptoms":   symptoms,
	})

	go s.run(ctx, exec, &pipelineState{symptoms: symptoms})
	return nil
}

func cleanSymptoms(symptoms []string) []string {
	out := make([]string, 0, len(symptoms))
	for _, sym := range symptoms {
		if trimmed := strings.TrimSpace(sym); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// run drives the execution through the fixed stage order. The only
// blocking points are the adapter calls; everything between them is
// a non-blocking transition.
func (s *analysisService) run(ctx context.Context, exec *model.PipelineExecution, st *pipelineState) {
	for {
		// Next safe point: never enter a stage once cancelled.
		if ctx.Err() != nil {
			s.abort(exec)
			return
		}

		s.emit(exec.SessionID, dto.Envelope{
			Type: dto.MessageTypeProgress,
			Data: dto.ProgressPayload{
				Step:    exec.Stage.Step(),
				Message: exec.Stage.ProgressMessage(),
			},
		})

		if err := s.runStage(ctx, exec.Stage, st); err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-call; the failure is an artifact of
				// the cancellation, emit nothing.
				s.abort(exec)
				return
			}
			s.fail(exec, err)
			return
		}

		if exec.Stage == model.StageValidating {
			s.complete(exec, st)
			return
		}

		if err := exec.Advance(); err != nil {
			s.logger.Error("AnalysisService", "Illegal stage transition", map[string]interface{}{
				"session_id": exec.SessionID,
				"error":      err.Error(),
			})
			s.fail(exec, err)
			return
		}
	}
}

func (s *analysisService) runStage(ctx context.Context, stage model.Stage, st *pipelineState) error {
	switch stage {
	case model.StageNormalizing:
		concepts, err := s.mapper.Map(ctx, st.symptoms)
		if err != nil {
			return err
		}
		st.concepts = concepts
		return nil

	case model.StageDiagnosing:
		// An empty concept set still gets a prediction attempt, and a
		// predictor failure is a legitimate triage outcome, not a
		// pipeline fault. This stage cannot fail.
		diagnosis, err := s.predictor.Predict(ctx, st.concepts)
		if err != nil {
			diagnosis = predictor.Inconclusive()
		}
		st.diagnosis = diagnosis
		return nil

	case model.StageRecommending:
		drugs, err := s.recommender.Recommend(ctx, st.diagnosis.Code)
		if err != nil {
			return err
		}
		st.drugs = drugs
		return nil

	case model.StageValidating:
		drugIDs := make([]string, 0, len(st.drugs))
		for _, d := range st.drugs {
			drugIDs = append(drugIDs, d.ID)
		}
		interactions, err := s.checker.Check(ctx, drugIDs)
		if err != nil {
			return err
		}
		st.interactions = interactions
		return nil

	default:
		return errors.New("unreachable stage")
	}
}

func (s *analysisService) complete(exec *model.PipelineExecution, st *pipelineState) {
	if err := exec.Advance(); err != nil {
		s.fail(exec, err)
		return
	}

	result := mapper.ToResultPayload(st.diagnosis, st.drugs, st.interactions)
	s.emit(exec.SessionID, dto.Envelope{
		Type: dto.MessageTypeResult,
		Data: result,
	})
	s.registry.Finish(exec.SessionID)

	s.logger.Info("AnalysisService", "Pipeline completed", map[string]interface{}{
		"session_id":     exec.SessionID,
		"diagnosis_code": st.diagnosis.Code,
		"drug_count":     len(st.drugs),
	})

	s.publishLifecycleEvent(events.TypeAnalysisCompleted, map[string]interface{}{
		"session_id":     exec.SessionID.String(),
		"diagnosis_code": st.diagnosis.Code,
		"diagnosis_name": st.diagnosis.Name,
		"drug_count":     len(st.drugs),
	})
}

func (s *analysisService) fail(exec *model.PipelineExecution, cause error) {
	failedStage := exec.Stage
	if err := exec.Fail(); err != nil {
		s.logger.Error("AnalysisService", "Double terminal transition", map[string]interface{}{
			"session_id": exec.SessionID,
			"error":      err.Error(),
		})
		return
	}

	s.emit(exec.SessionID, dto.Envelope{
		Type: dto.MessageTypeError,
		Data: dto.ErrorPayload{
			Message: cause.Error(),
			Stage:   failedStage.String(),
		},
	})
	s.registry.Finish(exec.SessionID)

	s.logger.Warn("AnalysisService", "Pipeline failed", map[string]interface{}{
		"session_id": exec.SessionID,
		"stage":      failedStage.String(),
		"error":      cause.Error(),
	})

	s.publishLifecycleEvent(events.TypeAnalysisFailed, map[string]interface{}{
		"session_id": exec.SessionID.String(),
		"stage":      failedStage.String(),
		"error":      cause.Error(),
	})
}

// abort ends a cancelled execution silently: the client is gone, so
// no event is emitted and no lifecycle event is published.
func (s *analysisService) abort(exec *model.PipelineExecution) {
	s.logger.Info("AnalysisService", "Pipeline cancelled", map[string]interface{}{
		"session_id": exec.SessionID,
		"stage":      exec.Stage.String(),
	})
}

func (s *analysisService) emit(sessionID uuid.UUID, envelope dto.Envelope) {
	if err := s.publisher.PublishSessionEvent(sessionID, envelope); err != nil {
		s.logger.Error("AnalysisService", "Failed to publish session event", map[string]interface{}{
			"session_id": sessionID,
			"type":       envelope.Type,
			"error":      err.Error(),
		})
	}
}

func (s *analysisService) publishLifecycleEvent(eventType string, data map[string]interface{}) {
	if s.natsPub == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.logger.Warn("AnalysisService", "Failed to publish lifecycle event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
