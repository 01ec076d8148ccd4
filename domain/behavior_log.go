package domain

import (
	"math"
	"time"
)

// BehaviorLog is one observed learning interaction.
type BehaviorLog struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index:idx_behavior_logs_user_created" json:"user_id"`
	Action       string    `gorm:"column:action;not null" json:"action"`
	LessonID     string    `gorm:"column:lesson_id;not null" json:"lesson_id"`
	ResponseTime float64   `gorm:"column:response_time" json:"response_time"`
	RetryCount   int       `gorm:"column:retry_count" json:"retry_count"`
	Mistakes     int       `gorm:"column:mistakes" json:"mistakes"`
	FocusScore   float64   `gorm:"column:focus_score" json:"focus_score"`
	CreatedAt    time.Time `gorm:"column:created_at;index:idx_behavior_logs_user_created" json:"timestamp"`
}

func (BehaviorLog) TableName() string {
	return "behavior_logs"
}

// Accuracy scores the interaction from its mistake count, 0..100.
func (l BehaviorLog) Accuracy() float64 {
	return math.Max(0, math.Min(100, 100-10*float64(l.Mistakes)))
}
