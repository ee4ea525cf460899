package participation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-formacao/internal/identity"
	"go-formacao/internal/participation"
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeParticipationService struct {
	enrollFn      func(ctx context.Context, p *identity.Principal, req participation.EnrollRequest) (participation.ParticipationResponse, error)
	updateFn      func(ctx context.Context, p *identity.Principal, id string, req participation.UpdateRequest) (participation.ParticipationResponse, error)
	approveFn     func(ctx context.Context, p *identity.Principal, id string, req participation.TransitionRequest) (participation.ParticipationResponse, error)
	fullJourneyFn func(ctx context.Context, p *identity.Principal, userID string) (participation.FullJourneyResponse, error)
}

func (f *fakeParticipationService) Enroll(ctx context.Context, p *identity.Principal, req participation.EnrollRequest) (participation.ParticipationResponse, error) {
	if f.enrollFn != nil {
		return f.enrollFn(ctx, p, req)
	}
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) GetAll(context.Context, *identity.Principal, participation.ListFilter) ([]participation.ParticipationResponse, int64, error) {
	return nil, 0, nil
}
func (f *fakeParticipationService) GetByID(context.Context, *identity.Principal, string) (participation.ParticipationResponse, error) {
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) GetByUser(context.Context, *identity.Principal, string) ([]participation.ParticipationResponse, error) {
	return nil, nil
}
func (f *fakeParticipationService) FullJourney(ctx context.Context, p *identity.Principal, userID string) (participation.FullJourneyResponse, error) {
	if f.fullJourneyFn != nil {
		return f.fullJourneyFn(ctx, p, userID)
	}
	return participation.FullJourneyResponse{}, nil
}
func (f *fakeParticipationService) Update(ctx context.Context, p *identity.Principal, id string, req participation.UpdateRequest) (participation.ParticipationResponse, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, p, id, req)
	}
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Start(context.Context, *identity.Principal, string, participation.TransitionRequest) (participation.ParticipationResponse, error) {
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Approve(ctx context.Context, p *identity.Principal, id string, req participation.TransitionRequest) (participation.ParticipationResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, p, id, req)
	}
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Reprove(context.Context, *identity.Principal, string, participation.TransitionRequest) (participation.ParticipationResponse, error) {
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Withdraw(context.Context, *identity.Principal, string, participation.TransitionRequest) (participation.ParticipationResponse, error) {
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Transfer(context.Context, *identity.Principal, string, participation.TransitionRequest) (participation.ParticipationResponse, error) {
	return participation.ParticipationResponse{}, nil
}
func (f *fakeParticipationService) Delete(context.Context, *identity.Principal, string) error {
	return nil
}
func (f *fakeParticipationService) Stats(context.Context, *identity.Principal) (participation.ParticipationStatsResponse, error) {
	return participation.ParticipationStatsResponse{}, nil
}

// newParticipationRouter wires the real rbac policy in front of the
// handler so the role gates are exercised end to end.
func newParticipationRouter(t *testing.T, svc participation.Service, p *identity.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("principal", p)
		c.Next()
	})
	participation.RegisterRoutes(r.Group("/api"), participation.NewHandler(svc), rbac.NewService(enforcer))
	return r
}

func principalWithRole(role string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: uuid.NewString(),
		Name:     "Coordenador",
		Roles:    []string{role},
		Status:   "active",
	}
}

func TestHandler_ApproveRequiresAdmin(t *testing.T) {
	svc := &fakeParticipationService{
		approveFn: func(_ context.Context, _ *identity.Principal, id string, _ participation.TransitionRequest) (participation.ParticipationResponse, error) {
			return participation.ParticipationResponse{ID: id, Status: participation.StatusApproved}, nil
		},
	}
	target := "/api/participations/" + uuid.NewString() + "/approve"

	w := httptest.NewRecorder()
	r := newParticipationRouter(t, svc, principalWithRole(identity.RoleUser))
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r = newParticipationRouter(t, svc, principalWithRole(identity.RoleAdmin))
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), participation.StatusApproved)
}

func TestHandler_EnrollRequiresAdmin(t *testing.T) {
	svc := &fakeParticipationService{}
	body := `{"user_id":"` + uuid.NewString() + `","cycle_id":"` + uuid.NewString() + `"}`

	w := httptest.NewRecorder()
	r := newParticipationRouter(t, svc, principalWithRole(identity.RoleFormador))
	req := httptest.NewRequest(http.MethodPost, "/api/participations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_UpdateRejectsUnknownStatus(t *testing.T) {
	svc := &fakeParticipationService{}
	w := httptest.NewRecorder()
	r := newParticipationRouter(t, svc, principalWithRole(identity.RoleAdmin))

	req := httptest.NewRequest(http.MethodPut, "/api/participations/"+uuid.NewString(),
		strings.NewReader(`{"status":"graduated"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_FullJourney(t *testing.T) {
	userID := uuid.NewString()
	svc := &fakeParticipationService{
		fullJourneyFn: func(_ context.Context, _ *identity.Principal, uid string) (participation.FullJourneyResponse, error) {
			assert.Equal(t, userID, uid)
			return participation.FullJourneyResponse{
				UserID:                 uid,
				UserName:               "Formando",
				JourneyProgressPercent: 50,
			}, nil
		},
	}

	w := httptest.NewRecorder()
	r := newParticipationRouter(t, svc, principalWithRole(identity.RoleUser))
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+userID+"/journey", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"journey_progress_percent":50`)
}
