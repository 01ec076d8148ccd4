package behavior

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cogniLearn/business/analyzer"
	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BehaviorLogRepository interface {
	Create(ctx context.Context, log *domain.BehaviorLog) error
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error)
}

type CognitiveResultRepository interface {
	Upsert(ctx context.Context, res *domain.CognitiveResult) error
}

type Analyzer interface {
	Analyze(responseTime float64, retryCount, mistakes int, focusScore float64) analyzer.Result
}

type Service struct {
	logRepo       BehaviorLogRepository
	cognitiveRepo CognitiveResultRepository
	analyzer      Analyzer
	now           func() time.Time
}

func NewService(logRepo BehaviorLogRepository, cognitiveRepo CognitiveResultRepository, a Analyzer) *Service {
	return &Service{
		logRepo:       logRepo,
		cognitiveRepo: cognitiveRepo,
		analyzer:      a,
		now:           time.Now,
	}
}

// Outcome is what a logged behavior event produced.
type Outcome struct {
	Log       domain.BehaviorLog
	Analysis  analyzer.Result
	Cognitive domain.CognitiveResult
}

// LogBehavior persists the event, analyzes it and overwrites the user's
// cognitive result with the new analysis.
func (s *Service) LogBehavior(ctx context.Context, userID uint, log domain.BehaviorLog) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("context error: %w", err)
	}
	if userID == 0 {
		return Outcome{}, errors.New("user id is required")
	}

	log.ID = uuid.NewString()
	log.UserID = userID
	log.CreatedAt = s.now().UTC()

	if err := s.logRepo.Create(ctx, &log); err != nil {
		logger.Error("Failed to create behavior log", err, "user_id", userID)
		return Outcome{}, err
	}

	res := s.analyzer.Analyze(log.ResponseTime, log.RetryCount, log.Mistakes, log.FocusScore)

	cognitive := domain.CognitiveResult{
		UserID:          userID,
		LearningType:    res.LearningPattern.String(),
		LearnerGroup:    res.LearnerGroup,
		AtRisk:          res.AtRisk,
		FocusScore:      log.FocusScore,
		CuriosityIndex:  analyzer.CuriosityIndex(log.FocusScore, log.Mistakes),
		Recommendations: datatypes.JSONSlice[string](res.Recommendations),
		UpdatedAt:       log.CreatedAt,
	}

	if err := s.cognitiveRepo.Upsert(ctx, &cognitive); err != nil {
		logger.Error("Failed to upsert cognitive result", err, "user_id", userID, "log_id", log.ID)
		return Outcome{}, fmt.Errorf("failed to save cognitive result: %w", err)
	}

	logger.Debug("behavior_analyzed",
		"trace_id", logger.TraceIDFromContext(ctx),
		"user_id", userID,
		"log_id", log.ID,
		"pattern", res.LearningPattern,
		"group", res.LearnerGroup,
		"at_risk", res.AtRisk,
		"curiosity_index", cognitive.CuriosityIndex,
	)

	return Outcome{Log: log, Analysis: res, Cognitive: cognitive}, nil
}

func (s *Service) RecentLogs(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	logs, err := s.logRepo.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to find behavior logs", err, "user_id", userID)
		return nil, err
	}

	return logs, nil
}
