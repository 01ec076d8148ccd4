package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cogniLearn/business/analyzer"
	"cogniLearn/business/behavior"
	"cogniLearn/business/cognitive"
	"cogniLearn/business/dashboard"
	"cogniLearn/business/report"
	"cogniLearn/business/user"
	"cogniLearn/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	registered *domain.User
	err        error
}

func (f *fakeUserService) Register(ctx context.Context, u *domain.User) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	f.registered = u
	out := *u
	out.ID = 5
	if out.Role == "" {
		out.Role = domain.RoleStudent
	}
	return out, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password, ip, ua string) (string, domain.User, error) {
	if password != "secret1" {
		return "", domain.User{}, user.ErrInvalidCredentials
	}
	return "tok-1", domain.User{ID: 5, Email: email, Role: domain.RoleStudent}, nil
}

func (f *fakeUserService) RefreshToken(ctx context.Context, old, ip, ua string) (string, domain.User, error) {
	if old != "tok-1" {
		return "", domain.User{}, domain.ErrTokenNotFound
	}
	return "tok-2", domain.User{ID: 5, Role: domain.RoleStudent}, nil
}

func (f *fakeUserService) Logout(ctx context.Context, userID uint, token string) error {
	return nil
}

func (f *fakeUserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if id != 5 {
		return domain.User{}, domain.ErrUserNotFound
	}
	return domain.User{ID: 5, Email: "kid@example.com"}, nil
}

type fakeBehaviorService struct {
	got domain.BehaviorLog
	err error
}

func (f *fakeBehaviorService) LogBehavior(ctx context.Context, userID uint, log domain.BehaviorLog) (behavior.Outcome, error) {
	if f.err != nil {
		return behavior.Outcome{}, f.err
	}
	log.ID = "log-1"
	log.UserID = userID
	f.got = log
	return behavior.Outcome{
		Log:      log,
		Analysis: analyzer.Result{LearningPattern: analyzer.PatternAuditory, LearnerGroup: 2, Recommendations: []string{"x"}},
	}, nil
}

func (f *fakeBehaviorService) RecentLogs(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error) {
	return []domain.BehaviorLog{{ID: "log-1", UserID: userID, LessonID: "math-1"}}, nil
}

type fakeCognitiveService struct{}

func (fakeCognitiveService) GetCognitive(ctx context.Context, userID uint) (domain.CognitiveResult, error) {
	return cognitive.DefaultResult(userID), nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetDashboard(ctx context.Context, userID uint) (any, error) {
	switch userID {
	case 1:
		return domain.TeacherDashboard{ClassOverview: "3 students active"}, nil
	case 2:
		return nil, dashboard.ErrUnsupportedRole
	case 3:
		return nil, errors.New("db down")
	default:
		return nil, domain.ErrUserNotFound
	}
}

type fakeReportService struct{}

func (fakeReportService) GetReport(ctx context.Context, userID uint, reportType string) (domain.Report, error) {
	if userID == 9 {
		return domain.Report{}, report.ErrInvalidReportType
	}
	return report.DefaultReport(userID, reportType), nil
}

type staticModels bool

func (s staticModels) Available() bool { return bool(s) }

func serve(t *testing.T, method, path, body string, register func(e *echo.Echo), userID uint) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	if userID != 0 {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set("user_id", userID)
				c.Set("token", "tok-1")
				return next(c)
			}
		})
	}
	register(e)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserHandler(t *testing.T) {
	svc := &fakeUserService{}
	h := NewUserHandler(svc)
	routes := func(e *echo.Echo) {
		e.POST("/register", h.Register)
		e.POST("/login", h.Login)
		e.POST("/refresh-token", h.RefreshToken)
		e.POST("/logout", h.Logout)
		e.GET("/users/:id", h.GetUserByID)
	}

	rec := serve(t, http.MethodPost, "/register", `{"email":"kid@example.com","password":"secret1","role":"student","parent_teacher_link":"mom@example.com"}`, routes, 0)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.registered)
	assert.Equal(t, "mom@example.com", svc.registered.ParentTeacherLink)

	rec = serve(t, http.MethodPost, "/register", `{"email":"kid@example.com","password":"123","role":"student"}`, routes, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, http.MethodPost, "/register", `{"email":"kid@example.com","password":"secret1","role":"admin"}`, routes, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = user.ErrEmailExists
	rec = serve(t, http.MethodPost, "/register", `{"email":"kid@example.com","password":"secret1"}`, routes, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
	svc.err = nil

	rec = serve(t, http.MethodPost, "/login", `{"email":"kid@example.com","password":"secret1"}`, routes, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok-1"`)

	rec = serve(t, http.MethodPost, "/login", `{"email":"kid@example.com","password":"wrong"}`, routes, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, http.MethodPost, "/refresh-token", `{}`, routes, 5)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok-2"`)

	rec = serve(t, http.MethodPost, "/refresh-token", `{"token":"old"}`, routes, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusOK, serve(t, http.MethodPost, "/logout", "", routes, 5).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(t, http.MethodPost, "/logout", "", routes, 0).Code)

	rec = serve(t, http.MethodGet, "/users/5", "", routes, 5)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, http.StatusNotFound, serve(t, http.MethodGet, "/users/6", "", routes, 5).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodGet, "/users/x", "", routes, 5).Code)
}

func TestBehaviorHandler(t *testing.T) {
	svc := &fakeBehaviorService{}
	h := NewBehaviorHandler(svc)
	routes := func(e *echo.Echo) {
		e.POST("/behavior-log", h.LogBehavior)
		e.GET("/behavior-log/:user_id", h.GetBehaviorLogs)
	}

	body := `{"action":"quiz_submit","lesson_id":"math-1","response_time":12.5,"retry_count":1,"mistakes":2,"focus_score":75}`
	rec := serve(t, http.MethodPost, "/behavior-log", body, routes, 3)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"log_id":"log-1"`)
	assert.Contains(t, rec.Body.String(), `"learning_pattern":"Auditory"`)
	assert.Equal(t, uint(3), svc.got.UserID)
	assert.Equal(t, 12.5, svc.got.ResponseTime)

	invalid := []string{
		`{"action":"a","lesson_id":"l","focus_score":101}`,
		`{"action":"a","lesson_id":"l","mistakes":-1}`,
		`{"action":"a","lesson_id":"l","response_time":-0.5}`,
		`{"lesson_id":"l"}`,
		`{"action":`,
	}
	for _, b := range invalid {
		assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodPost, "/behavior-log", b, routes, 3).Code, b)
	}

	assert.Equal(t, http.StatusUnauthorized, serve(t, http.MethodPost, "/behavior-log", body, routes, 0).Code)

	svc.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, serve(t, http.MethodPost, "/behavior-log", body, routes, 3).Code)

	rec = serve(t, http.MethodGet, "/behavior-log/3?limit=5", "", routes, 3)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lesson_id":"math-1"`)
	assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodGet, "/behavior-log/3?limit=-2", "", routes, 3).Code)
}

func TestReadHandlers(t *testing.T) {
	cog := NewCognitiveHandler(fakeCognitiveService{})
	dash := NewDashboardHandler(fakeDashboardService{})
	rep := NewReportHandler(fakeReportService{})
	health := NewHealthHandler(staticModels(false))
	routes := func(e *echo.Echo) {
		e.GET("/cognitive/:user_id", cog.GetCognitive)
		e.GET("/dashboard/:user_id", dash.GetDashboard)
		e.GET("/weekly-report/:user_id", rep.GetWeeklyReport)
		e.GET("/monthly-report/:user_id", rep.GetMonthlyReport)
		e.GET("/healthz", health.Health)
	}

	rec := serve(t, http.MethodGet, "/cognitive/4", "", routes, 4)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Watch video tutorials")

	rec = serve(t, http.MethodGet, "/dashboard/1", "", routes, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3 students active")
	assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodGet, "/dashboard/2", "", routes, 1).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, http.MethodGet, "/dashboard/3", "", routes, 1).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, http.MethodGet, "/dashboard/4", "", routes, 1).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodGet, "/dashboard/0", "", routes, 1).Code)

	rec = serve(t, http.MethodGet, "/weekly-report/4", "", routes, 4)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accuracy_trend":[60,65,70,75,80]`)

	rec = serve(t, http.MethodGet, "/monthly-report/4", "", routes, 4)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"improvement_percentage":35`)
	assert.Equal(t, http.StatusBadRequest, serve(t, http.MethodGet, "/monthly-report/9", "", routes, 9).Code)

	rec = serve(t, http.MethodGet, "/healthz", "", routes, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","models_available":false}`, rec.Body.String())
}
