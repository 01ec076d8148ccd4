package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CognitiveResult holds the latest analysis for a user. One row per user.
type CognitiveResult struct {
	ID              uint                        `gorm:"primaryKey" json:"-"`
	UserID          uint                        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	LearningType    string                      `gorm:"column:learning_type" json:"learning_type"`
	LearnerGroup    int                         `gorm:"column:learner_group" json:"learner_group"`
	AtRisk          bool                        `gorm:"column:at_risk" json:"at_risk"`
	FocusScore      float64                     `gorm:"column:focus_score" json:"focus_score"`
	CuriosityIndex  float64                     `gorm:"column:curiosity_index" json:"curiosity_index"`
	Recommendations datatypes.JSONSlice[string] `gorm:"column:recommendations" json:"recommendations"`
	UpdatedAt       time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (CognitiveResult) TableName() string {
	return "cognitive_results"
}
