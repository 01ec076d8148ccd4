package postgres

import (
	"context"
	"fmt"
	"time"

	"cogniLearn/domain"

	"gorm.io/gorm"
)

type BehaviorLogRepository struct {
	DB *gorm.DB
}

func NewBehaviorLogRepository(db *gorm.DB) *BehaviorLogRepository {
	return &BehaviorLogRepository{DB: db}
}

func (r *BehaviorLogRepository) Create(ctx context.Context, log *domain.BehaviorLog) error {
	if err := r.DB.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to insert behavior log: %w", err)
	}
	return nil
}

// FindByUserSince returns a user's logs created at or after since, oldest first.
func (r *BehaviorLogRepository) FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.BehaviorLog, error) {
	var logs []domain.BehaviorLog

	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to query behavior logs: %w", err)
	}

	return logs, nil
}

// FindRecentByUser returns the latest logs for a user, newest first.
func (r *BehaviorLogRepository) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var logs []domain.BehaviorLog
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to query behavior logs: %w", err)
	}

	return logs, nil
}
