package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"gorm.io/datatypes"
)

var ErrInvalidReportType = errors.New("invalid report type")

type ReportRepository interface {
	Find(ctx context.Context, userID uint, reportType string) (domain.Report, error)
	Upsert(ctx context.Context, report *domain.Report) error
}

type BehaviorLogRepository interface {
	FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.BehaviorLog, error)
}

type UserRepository interface {
	FindByRole(ctx context.Context, role string) ([]domain.User, error)
}

// window describes how a report type slices its period.
type window struct {
	buckets    int
	bucketSize time.Duration
}

func (w window) length() time.Duration {
	return time.Duration(w.buckets) * w.bucketSize
}

var windows = map[string]window{
	domain.ReportWeekly:  {buckets: 7, bucketSize: 24 * time.Hour},
	domain.ReportMonthly: {buckets: 4, bucketSize: 7 * 24 * time.Hour},
}

func ValidType(reportType string) bool {
	_, ok := windows[reportType]
	return ok
}

// DefaultReport is served when nothing has been generated for a user yet.
func DefaultReport(userID uint, reportType string) domain.Report {
	r := domain.Report{
		UserID:           userID,
		Type:             reportType,
		MistakeReduction: true,
	}

	switch reportType {
	case domain.ReportMonthly:
		r.AccuracyTrend = []float64{50, 60, 70, 85}
		r.ImprovementPercentage = 35
	default:
		r.AccuracyTrend = []float64{60, 65, 70, 75, 80}
		r.ImprovementPercentage = 15
	}

	return r
}

type Service struct {
	reportRepo ReportRepository
	logRepo    BehaviorLogRepository
	userRepo   UserRepository
	now        func() time.Time
}

func NewService(reportRepo ReportRepository, logRepo BehaviorLogRepository, userRepo UserRepository) *Service {
	return &Service{
		reportRepo: reportRepo,
		logRepo:    logRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

func (s *Service) GetReport(ctx context.Context, userID uint, reportType string) (domain.Report, error) {
	if !ValidType(reportType) {
		return domain.Report{}, ErrInvalidReportType
	}

	r, err := s.reportRepo.Find(ctx, userID, reportType)
	if errors.Is(err, domain.ErrReportNotFound) {
		return DefaultReport(userID, reportType), nil
	}
	if err != nil {
		logger.Error("Failed to find report", err, "user_id", userID, "type", reportType)
		return domain.Report{}, err
	}

	return r, nil
}

// GenerateReport rebuilds one user's report from the behavior logs in the
// report window. It returns false when the window holds no logs.
func (s *Service) GenerateReport(ctx context.Context, userID uint, reportType string) (bool, error) {
	w, ok := windows[reportType]
	if !ok {
		return false, ErrInvalidReportType
	}

	end := s.now().UTC()
	start := end.Add(-w.length())

	logs, err := s.logRepo.FindByUserSince(ctx, userID, start)
	if err != nil {
		return false, fmt.Errorf("load behavior logs: %w", err)
	}

	r, ok := BuildReport(userID, reportType, logs, start, end)
	if !ok {
		return false, nil
	}

	if err := s.reportRepo.Upsert(ctx, &r); err != nil {
		return false, fmt.Errorf("save report: %w", err)
	}

	return true, nil
}

// GenerateAll regenerates reports of one type for every student. Failures
// for a single student are logged and skipped.
func (s *Service) GenerateAll(ctx context.Context, reportType string) (int, error) {
	if !ValidType(reportType) {
		return 0, ErrInvalidReportType
	}

	students, err := s.userRepo.FindByRole(ctx, domain.RoleStudent)
	if err != nil {
		return 0, fmt.Errorf("load students: %w", err)
	}

	generated := 0
	for _, st := range students {
		if err := ctx.Err(); err != nil {
			return generated, err
		}

		ok, err := s.GenerateReport(ctx, st.ID, reportType)
		if err != nil {
			logger.Error("Failed to generate report", err, "user_id", st.ID, "type", reportType)
			continue
		}
		if ok {
			generated++
		}
	}

	logger.Info("Reports generated", "type", reportType, "students", len(students), "generated", generated)
	return generated, nil
}

// BuildReport aggregates logs inside [start, end) into a report. Logs
// outside the window are ignored.
func BuildReport(userID uint, reportType string, logs []domain.BehaviorLog, start, end time.Time) (domain.Report, bool) {
	w, ok := windows[reportType]
	if !ok {
		return domain.Report{}, false
	}

	sums := make([]float64, w.buckets)
	counts := make([]int, w.buckets)
	inWindow := make([]domain.BehaviorLog, 0, len(logs))

	for _, l := range logs {
		if l.CreatedAt.Before(start) || !l.CreatedAt.Before(end) {
			continue
		}
		idx := int(l.CreatedAt.Sub(start) / w.bucketSize)
		if idx >= w.buckets {
			idx = w.buckets - 1
		}
		sums[idx] += l.Accuracy()
		counts[idx]++
		inWindow = append(inWindow, l)
	}

	if len(inWindow) == 0 {
		return domain.Report{}, false
	}

	trend := make([]float64, 0, w.buckets)
	for i := range sums {
		if counts[i] > 0 {
			trend = append(trend, round1(sums[i]/float64(counts[i])))
		}
	}

	improvement := 0.0
	if len(trend) >= 2 {
		improvement = round1(trend[len(trend)-1] - trend[0])
	}

	return domain.Report{
		UserID:                userID,
		Type:                  reportType,
		AccuracyTrend:         datatypes.JSONSlice[float64](trend),
		ImprovementPercentage: improvement,
		MistakeReduction:      mistakesReduced(inWindow),
		PeriodStart:           start,
		PeriodEnd:             end,
	}, true
}

// mistakesReduced compares mean mistakes of the later half of the logs to
// the earlier half. Logs must be in chronological order.
func mistakesReduced(logs []domain.BehaviorLog) bool {
	if len(logs) < 2 {
		return false
	}

	mid := len(logs) / 2
	return meanMistakes(logs[mid:]) < meanMistakes(logs[:mid])
}

func meanMistakes(logs []domain.BehaviorLog) float64 {
	total := 0
	for _, l := range logs {
		total += l.Mistakes
	}
	return float64(total) / float64(len(logs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
