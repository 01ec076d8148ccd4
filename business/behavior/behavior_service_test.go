package behavior

import (
	"context"
	"errors"
	"testing"
	"time"

	"cogniLearn/business/analyzer"
	"cogniLearn/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogRepo struct {
	logs      []domain.BehaviorLog
	createErr error
}

func (r *fakeLogRepo) Create(ctx context.Context, log *domain.BehaviorLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeLogRepo) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error) {
	var out []domain.BehaviorLog
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.logs[i].UserID == userID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

type fakeCognitiveRepo struct {
	byUser    map[uint]domain.CognitiveResult
	upsertErr error
}

func (r *fakeCognitiveRepo) Upsert(ctx context.Context, res *domain.CognitiveResult) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.byUser[res.UserID] = *res
	return nil
}

type fixedScorer int

func (f fixedScorer) Predict(domain.FeatureVector) int { return int(f) }

func newTestService(a Analyzer) (*Service, *fakeLogRepo, *fakeCognitiveRepo) {
	logs := &fakeLogRepo{}
	cog := &fakeCognitiveRepo{byUser: map[uint]domain.CognitiveResult{}}
	svc := NewService(logs, cog, a)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc, logs, cog
}

func TestLogBehaviorPersistsAndAnalyzes(t *testing.T) {
	a := analyzer.New(analyzer.Models{Pattern: fixedScorer(2), Group: fixedScorer(3), Risk: fixedScorer(1)})
	svc, logs, cog := newTestService(a)

	out, err := svc.LogBehavior(context.Background(), 7, domain.BehaviorLog{
		Action:       "quiz_submit",
		LessonID:     "math-01",
		ResponseTime: 10,
		RetryCount:   1,
		Mistakes:     8,
		FocusScore:   40,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(out.Log.ID)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), out.Log.UserID)
	require.Len(t, logs.logs, 1)
	assert.Equal(t, out.Log.ID, logs.logs[0].ID)

	assert.Equal(t, analyzer.PatternKinesthetic, out.Analysis.LearningPattern)
	assert.True(t, out.Analysis.AtRisk)

	stored := cog.byUser[7]
	assert.Equal(t, "Kinesthetic", stored.LearningType)
	assert.Equal(t, 3, stored.LearnerGroup)
	assert.True(t, stored.AtRisk)
	assert.Equal(t, 40.0, stored.FocusScore)
	assert.Equal(t, 44.0, stored.CuriosityIndex)
	assert.Equal(t, []string{
		analyzer.RecommendKinesthetic,
		analyzer.RecommendHighMistake,
		analyzer.RecommendLowFocus,
	}, []string(stored.Recommendations))
}

func TestLogBehaviorLatestAnalysisWins(t *testing.T) {
	a := analyzer.New(analyzer.Models{Pattern: fixedScorer(0), Group: fixedScorer(0), Risk: fixedScorer(0)})
	svc, _, cog := newTestService(a)
	ctx := context.Background()

	_, err := svc.LogBehavior(ctx, 1, domain.BehaviorLog{Action: "a", LessonID: "l", Mistakes: 9, FocusScore: 10})
	require.NoError(t, err)
	_, err = svc.LogBehavior(ctx, 1, domain.BehaviorLog{Action: "a", LessonID: "l", Mistakes: 0, FocusScore: 100})
	require.NoError(t, err)

	stored := cog.byUser[1]
	assert.Equal(t, 100.0, stored.CuriosityIndex)
	assert.Equal(t, []string{analyzer.RecommendVisual}, []string(stored.Recommendations))
	assert.Len(t, cog.byUser, 1)
}

func TestLogBehaviorFallbackAnalyzer(t *testing.T) {
	svc, _, cog := newTestService(analyzer.NewUnavailable())

	out, err := svc.LogBehavior(context.Background(), 3, domain.BehaviorLog{Action: "a", LessonID: "l", Mistakes: 3, FocusScore: 70})
	require.NoError(t, err)

	assert.Equal(t, analyzer.PatternVisual, out.Analysis.LearningPattern)
	assert.Equal(t, 1, out.Analysis.LearnerGroup)
	assert.Equal(t, []string{analyzer.FallbackRecommendation}, []string(cog.byUser[3].Recommendations))
	assert.Equal(t, 84.0, cog.byUser[3].CuriosityIndex)
}

func TestLogBehaviorErrors(t *testing.T) {
	a := analyzer.NewUnavailable()

	t.Run("missing user", func(t *testing.T) {
		svc, _, _ := newTestService(a)
		_, err := svc.LogBehavior(context.Background(), 0, domain.BehaviorLog{})
		assert.Error(t, err)
	})

	t.Run("log insert fails", func(t *testing.T) {
		svc, logs, cog := newTestService(a)
		logs.createErr = errors.New("db down")
		_, err := svc.LogBehavior(context.Background(), 1, domain.BehaviorLog{})
		assert.EqualError(t, err, "db down")
		assert.Empty(t, cog.byUser)
	})

	t.Run("upsert fails", func(t *testing.T) {
		svc, _, cog := newTestService(a)
		cog.upsertErr = errors.New("conflict")
		_, err := svc.LogBehavior(context.Background(), 1, domain.BehaviorLog{})
		assert.ErrorContains(t, err, "conflict")
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc, logs, _ := newTestService(a)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.LogBehavior(ctx, 1, domain.BehaviorLog{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, logs.logs)
	})
}

func TestRecentLogs(t *testing.T) {
	svc, _, _ := newTestService(analyzer.NewUnavailable())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.LogBehavior(ctx, 5, domain.BehaviorLog{Action: "a", LessonID: "l", Mistakes: i})
		require.NoError(t, err)
	}
	_, err := svc.LogBehavior(ctx, 6, domain.BehaviorLog{Action: "a", LessonID: "l"})
	require.NoError(t, err)

	logs, err := svc.RecentLogs(ctx, 5, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 2, logs[0].Mistakes)
	assert.Equal(t, 1, logs[1].Mistakes)

	logs, err = svc.RecentLogs(ctx, 5, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
