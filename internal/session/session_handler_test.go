package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-presence/internal/session"
	sessionerrors "go-presence/internal/session/errors"
	verificationerrors "go-presence/internal/verification/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	startFn    func(ctx context.Context, employeeID string, req session.StartSessionRequest) (session.SessionResponse, error)
	checkInFn  func(ctx context.Context, employeeID string, req session.PeriodicCheckInRequest) (session.SessionResponse, error)
	endFn      func(ctx context.Context, employeeID string, req session.EndSessionRequest) (session.SessionResponse, error)
	activeFn   func(ctx context.Context, employeeID string) (session.SessionResponse, error)
	claimFn    func(ctx context.Context, employeeID string, req session.ClaimPairCodeRequest) (session.SessionResponse, error)
}

func (f *fakeService) Start(ctx context.Context, employeeID string, req session.StartSessionRequest) (session.SessionResponse, error) {
	return f.startFn(ctx, employeeID, req)
}
func (f *fakeService) PeriodicCheckIn(ctx context.Context, employeeID string, req session.PeriodicCheckInRequest) (session.SessionResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeService) Pause(ctx context.Context, employeeID string) (session.SessionResponse, error) {
	return session.SessionResponse{}, nil
}
func (f *fakeService) Resume(ctx context.Context, employeeID string) (session.SessionResponse, error) {
	return session.SessionResponse{}, nil
}
func (f *fakeService) Suspend(ctx context.Context, employeeID string) (session.SessionResponse, error) {
	return session.SessionResponse{}, nil
}
func (f *fakeService) End(ctx context.Context, employeeID string, req session.EndSessionRequest) (session.SessionResponse, error) {
	return f.endFn(ctx, employeeID, req)
}
func (f *fakeService) GetActive(ctx context.Context, employeeID string) (session.SessionResponse, error) {
	return f.activeFn(ctx, employeeID)
}
func (f *fakeService) GetHistory(ctx context.Context, employeeID string, limit int) ([]session.SessionResponse, error) {
	return nil, nil
}
func (f *fakeService) GetDaySummary(ctx context.Context, employeeID, date string) (session.DaySummaryResponse, error) {
	return session.DaySummaryResponse{}, nil
}
func (f *fakeService) GeneratePairCode(ctx context.Context, employeeID string) (session.PairCodeResponse, error) {
	return session.PairCodeResponse{}, nil
}
func (f *fakeService) ClaimPairCode(ctx context.Context, employeeID string, req session.ClaimPairCodeRequest) (session.SessionResponse, error) {
	return f.claimFn(ctx, employeeID, req)
}
func (f *fakeService) AttachScheduler(sched session.Scheduler)                 {}
func (f *fakeService) HandleVerificationDue(ctx context.Context, sessionID string) {}
func (f *fakeService) RestoreSchedules(ctx context.Context) error              { return nil }

func postContext(t *testing.T, employeeID, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("employee_id_validated", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_Start(t *testing.T) {
	employeeID := uuid.New().String()
	siteID := uuid.New().String()

	svc := &fakeService{
		startFn: func(ctx context.Context, eid string, req session.StartSessionRequest) (session.SessionResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, siteID, req.SiteID)
			return session.SessionResponse{ID: uuid.New().String(), Status: session.StatusPresent}, nil
		},
	}
	h := session.NewHandler(svc)

	c, w := postContext(t, employeeID, "/sessions/start",
		`{"site_id":"`+siteID+`","latitude":48.86,"longitude":2.33,"skip_facial":true,"security_answer":"rex"}`)
	h.Start(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), session.StatusPresent)
}

func TestHandler_Start_MissingSiteID(t *testing.T) {
	called := false
	svc := &fakeService{
		startFn: func(ctx context.Context, eid string, req session.StartSessionRequest) (session.SessionResponse, error) {
			called = true
			return session.SessionResponse{}, nil
		},
	}
	h := session.NewHandler(svc)

	c, w := postContext(t, uuid.New().String(), "/sessions/start", `{"security_answer":"rex"}`)
	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestHandler_CheckIn_VerificationFailure(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req session.PeriodicCheckInRequest) (session.SessionResponse, error) {
			return session.SessionResponse{}, verificationerrors.ErrWrongAnswer
		},
	}
	h := session.NewHandler(svc)

	c, w := postContext(t, uuid.New().String(), "/sessions/checkin",
		`{"latitude":48.86,"longitude":2.33,"skip_facial":true,"security_answer":"wrong"}`)
	h.CheckIn(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VERIFICATION_FAILED")
}

func TestHandler_GetActive_NotFound(t *testing.T) {
	svc := &fakeService{
		activeFn: func(ctx context.Context, eid string) (session.SessionResponse, error) {
			return session.SessionResponse{}, sessionerrors.ErrNoActiveSession
		},
	}
	h := session.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/sessions/active", nil)
	h.GetActive(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_End_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeService{
		endFn: func(ctx context.Context, eid string, req session.EndSessionRequest) (session.SessionResponse, error) {
			assert.Nil(t, req.Latitude)
			return session.SessionResponse{Status: session.StatusEnded, ReliabilityScore: 95}, nil
		},
	}
	h := session.NewHandler(svc)

	c, w := postContext(t, uuid.New().String(), "/sessions/end", "")
	h.End(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), session.StatusEnded)
}

func TestHandler_ClaimPairCode(t *testing.T) {
	svc := &fakeService{
		claimFn: func(ctx context.Context, eid string, req session.ClaimPairCodeRequest) (session.SessionResponse, error) {
			assert.Equal(t, "PAIR-x-1-abc", req.Code)
			assert.True(t, req.Confirmed)
			return session.SessionResponse{Status: session.StatusPresent}, nil
		},
	}
	h := session.NewHandler(svc)

	c, w := postContext(t, uuid.New().String(), "/sessions/paircode/claim", `{"code":"PAIR-x-1-abc","confirmed":true}`)
	h.ClaimPairCode(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
