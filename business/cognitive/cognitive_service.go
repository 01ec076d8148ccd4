package cognitive

import (
	"context"
	"errors"
	"fmt"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"
)

type CognitiveResultRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.CognitiveResult, error)
}

type Service struct {
	repo CognitiveResultRepository
}

func NewService(repo CognitiveResultRepository) *Service {
	return &Service{repo: repo}
}

// DefaultResult is served to users who have not logged any behavior yet.
func DefaultResult(userID uint) domain.CognitiveResult {
	return domain.CognitiveResult{
		UserID:          userID,
		LearningType:    "Visual",
		FocusScore:      85,
		CuriosityIndex:  70,
		Recommendations: []string{"Watch video tutorials", "Try interactive games"},
	}
}

func (s *Service) GetCognitive(ctx context.Context, userID uint) (domain.CognitiveResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CognitiveResult{}, fmt.Errorf("context error: %w", err)
	}

	res, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrCognitiveResultNotFound) {
		return DefaultResult(userID), nil
	}
	if err != nil {
		logger.Error("Failed to find cognitive result", err, "user_id", userID)
		return domain.CognitiveResult{}, err
	}

	return res, nil
}
