package postgres

import (
	"context"
	"errors"

	"cogniLearn/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Find(ctx context.Context, userID uint, reportType string) (domain.Report, error) {
	var report domain.Report

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, reportType).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Report{}, domain.ErrReportNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}

	return report, nil
}

func (r *ReportRepository) Upsert(ctx context.Context, report *domain.Report) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"accuracy_trend",
				"improvement_percentage",
				"mistake_reduction",
				"period_start",
				"period_end",
				"updated_at",
			}),
		}).
		Create(report).Error
}
