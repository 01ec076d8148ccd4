package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"github.com/robfig/cron/v3"
)

type Generator interface {
	GenerateAll(ctx context.Context, reportType string) (int, error)
}

// Scheduler regenerates stored reports on cron schedules. An empty schedule
// disables that report type.
type Scheduler struct {
	cron       *cron.Cron
	generator  Generator
	jobTimeout time.Duration
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func NewScheduler(generator Generator, weeklySchedule, monthlySchedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(cron.WithParser(parser)),
		generator:  generator,
		jobTimeout: 10 * time.Minute,
	}

	jobs := []struct {
		schedule   string
		reportType string
	}{
		{weeklySchedule, domain.ReportWeekly},
		{monthlySchedule, domain.ReportMonthly},
	}

	for _, j := range jobs {
		schedule := strings.TrimSpace(j.schedule)
		if schedule == "" {
			logger.Info("Report generation disabled", "type", j.reportType)
			continue
		}

		reportType := j.reportType
		if _, err := s.cron.AddFunc(schedule, func() { s.run(reportType) }); err != nil {
			return nil, fmt.Errorf("invalid %s report schedule %q: %w", reportType, schedule, err)
		}
		logger.Info("Report generation scheduled", "type", reportType, "cron", schedule)
	}

	return s, nil
}

func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(reportType string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.generator.GenerateAll(ctx, reportType)
	if err != nil {
		logger.Error("Report job failed", err, "type", reportType)
		return
	}

	logger.Info("Report job finished", "type", reportType, "generated", n, "took", time.Since(start).String())
}
