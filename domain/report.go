package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
)

type Report struct {
	ID                    uint                         `gorm:"primaryKey" json:"-"`
	UserID                uint                         `gorm:"column:user_id;not null;uniqueIndex:idx_reports_user_type" json:"user_id"`
	Type                  string                       `gorm:"column:type;not null;uniqueIndex:idx_reports_user_type" json:"type"`
	AccuracyTrend         datatypes.JSONSlice[float64] `gorm:"column:accuracy_trend" json:"accuracy_trend"`
	ImprovementPercentage float64                      `gorm:"column:improvement_percentage" json:"improvement_percentage"`
	MistakeReduction      bool                         `gorm:"column:mistake_reduction" json:"mistake_reduction"`
	PeriodStart           time.Time                    `gorm:"column:period_start" json:"period_start"`
	PeriodEnd             time.Time                    `gorm:"column:period_end" json:"period_end"`
	CreatedAt             time.Time                    `json:"-"`
	UpdatedAt             time.Time                    `json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
