package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"
)

const (
	window       = 7 * 24 * time.Hour
	progressLogs = 5

	PerformanceGood       = "Good"
	PerformanceAttention  = "Needs attention"
	PerformanceNoActivity = "No activity"
)

var ErrUnsupportedRole = errors.New("unsupported role")

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByLink(ctx context.Context, email string) ([]domain.User, error)
}

type BehaviorLogRepository interface {
	FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.BehaviorLog, error)
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error)
}

type CognitiveResultRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.CognitiveResult, error)
	FindByUserIDs(ctx context.Context, userIDs []uint) ([]domain.CognitiveResult, error)
}

type Service struct {
	userRepo      UserRepository
	logRepo       BehaviorLogRepository
	cognitiveRepo CognitiveResultRepository
	now           func() time.Time
}

func NewService(userRepo UserRepository, logRepo BehaviorLogRepository, cognitiveRepo CognitiveResultRepository) *Service {
	return &Service{
		userRepo:      userRepo,
		logRepo:       logRepo,
		cognitiveRepo: cognitiveRepo,
		now:           time.Now,
	}
}

// GetDashboard builds the dashboard for the user's role. The result is a
// StudentDashboard, ParentDashboard or TeacherDashboard.
func (s *Service) GetDashboard(ctx context.Context, userID uint) (any, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case domain.RoleStudent:
		return s.student(ctx, user)
	case domain.RoleParent:
		return s.parent(ctx, user)
	case domain.RoleTeacher:
		return s.teacher(ctx, user)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRole, user.Role)
	}
}

func (s *Service) student(ctx context.Context, user domain.User) (domain.StudentDashboard, error) {
	since := s.now().UTC().Add(-window)

	logs, err := s.logRepo.FindByUserSince(ctx, user.ID, since)
	if err != nil {
		logger.Error("Failed to load behavior logs", err, "user_id", user.ID)
		return domain.StudentDashboard{}, err
	}

	recent, err := s.logRepo.FindRecentByUser(ctx, user.ID, progressLogs)
	if err != nil {
		logger.Error("Failed to load recent behavior logs", err, "user_id", user.ID)
		return domain.StudentDashboard{}, err
	}

	progress := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		progress = append(progress, recent[i].Accuracy())
	}

	var seconds float64
	for _, l := range logs {
		seconds += l.ResponseTime
	}

	alerts := []string{}
	res, err := s.cognitiveRepo.FindByUserID(ctx, user.ID)
	switch {
	case err == nil:
		alerts = append(alerts, res.Recommendations...)
	case !errors.Is(err, domain.ErrCognitiveResultNotFound):
		return domain.StudentDashboard{}, err
	}

	return domain.StudentDashboard{
		StudyTime:        int(seconds / 60),
		FocusScore:       round1(meanFocus(logs)),
		LearningProgress: progress,
		Alerts:           alerts,
	}, nil
}

// linked returns the students supervised by the viewer, their logs of the
// last week and their stored results keyed by user id.
func (s *Service) linked(ctx context.Context, viewer domain.User) ([]domain.User, map[uint][]domain.BehaviorLog, map[uint]domain.CognitiveResult, error) {
	students, err := s.userRepo.FindByLink(ctx, viewer.Email)
	if err != nil {
		logger.Error("Failed to load linked students", err, "user_id", viewer.ID)
		return nil, nil, nil, err
	}

	since := s.now().UTC().Add(-window)
	logs := make(map[uint][]domain.BehaviorLog, len(students))
	ids := make([]uint, 0, len(students))
	for _, st := range students {
		l, err := s.logRepo.FindByUserSince(ctx, st.ID, since)
		if err != nil {
			logger.Error("Failed to load behavior logs", err, "user_id", st.ID)
			return nil, nil, nil, err
		}
		logs[st.ID] = l
		ids = append(ids, st.ID)
	}

	results := make(map[uint]domain.CognitiveResult, len(students))
	if len(ids) > 0 {
		rs, err := s.cognitiveRepo.FindByUserIDs(ctx, ids)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, r := range rs {
			results[r.UserID] = r
		}
	}

	return students, logs, results, nil
}

func (s *Service) parent(ctx context.Context, user domain.User) (domain.ParentDashboard, error) {
	children, logs, results, err := s.linked(ctx, user)
	if err != nil {
		return domain.ParentDashboard{}, err
	}

	var all []domain.BehaviorLog
	lessons := map[string]struct{}{}
	for _, c := range children {
		for _, l := range logs[c.ID] {
			all = append(all, l)
			lessons[l.LessonID] = struct{}{}
		}
	}

	alerts := []string{}
	atRisk := false
	for _, c := range children {
		if r, ok := results[c.ID]; ok && r.AtRisk {
			atRisk = true
			alerts = append(alerts, fmt.Sprintf("%s may need extra support.", displayName(c)))
		}
	}

	avgFocus := meanFocus(all)

	performance := PerformanceGood
	switch {
	case len(all) == 0:
		performance = PerformanceNoActivity
	case atRisk || avgFocus < 50:
		performance = PerformanceAttention
	}

	if len(all) > 0 && avgFocus < 50 {
		alerts = append(alerts, "Average focus dropped below 50% this week.")
	}

	return domain.ParentDashboard{
		ChildPerformance: performance,
		WeeklyOverview:   fmt.Sprintf("Completed %d lessons, %.0f%% average focus.", len(lessons), avgFocus),
		Alerts:           alerts,
	}, nil
}

func (s *Service) teacher(ctx context.Context, user domain.User) (domain.TeacherDashboard, error) {
	students, logs, results, err := s.linked(ctx, user)
	if err != nil {
		return domain.TeacherDashboard{}, err
	}

	active := 0
	atRisk := []string{}
	for _, st := range students {
		if len(logs[st.ID]) > 0 {
			active++
		}
		if r, ok := results[st.ID]; ok && r.AtRisk {
			atRisk = append(atRisk, displayName(st))
		}
	}

	alerts := []string{}
	if len(atRisk) > 0 {
		alerts = append(alerts, fmt.Sprintf("%d students flagged as at risk.", len(atRisk)))
	}
	if inactive := len(students) - active; inactive > 0 {
		alerts = append(alerts, fmt.Sprintf("%d students inactive this week.", inactive))
	}

	return domain.TeacherDashboard{
		ClassOverview:  fmt.Sprintf("%d students active", active),
		AtRiskStudents: atRisk,
		Alerts:         alerts,
	}, nil
}

func displayName(u domain.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func meanFocus(logs []domain.BehaviorLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum float64
	for _, l := range logs {
		sum += l.FocusScore
	}
	return sum / float64(len(logs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
