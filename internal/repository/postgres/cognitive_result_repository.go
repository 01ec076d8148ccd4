package postgres

import (
	"context"
	"errors"

	"cogniLearn/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CognitiveResultRepository struct {
	DB *gorm.DB
}

func NewCognitiveResultRepository(db *gorm.DB) *CognitiveResultRepository {
	return &CognitiveResultRepository{DB: db}
}

func (r *CognitiveResultRepository) FindByUserID(ctx context.Context, userID uint) (domain.CognitiveResult, error) {
	var res domain.CognitiveResult

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CognitiveResult{}, domain.ErrCognitiveResultNotFound
	}
	if err != nil {
		return domain.CognitiveResult{}, err
	}

	return res, nil
}

func (r *CognitiveResultRepository) FindByUserIDs(ctx context.Context, userIDs []uint) ([]domain.CognitiveResult, error) {
	if len(userIDs) == 0 {
		return []domain.CognitiveResult{}, nil
	}

	var results []domain.CognitiveResult
	if err := r.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// Upsert overwrites any earlier result for the same user.
func (r *CognitiveResultRepository) Upsert(ctx context.Context, res *domain.CognitiveResult) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"learning_type",
				"learner_group",
				"at_risk",
				"focus_score",
				"curiosity_index",
				"recommendations",
				"updated_at",
			}),
		}).
		Create(res).Error
}
