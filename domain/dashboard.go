package domain

type StudentDashboard struct {
	StudyTime        int       `json:"study_time"`
	FocusScore       float64   `json:"focus_score"`
	LearningProgress []float64 `json:"learning_progress"`
	Alerts           []string  `json:"alerts"`
}

type ParentDashboard struct {
	ChildPerformance string   `json:"child_performance"`
	WeeklyOverview   string   `json:"weekly_overview"`
	Alerts           []string `json:"alerts"`
}

type TeacherDashboard struct {
	ClassOverview  string   `json:"class_overview"`
	AtRiskStudents []string `json:"at_risk_students"`
	Alerts         []string `json:"alerts"`
}
