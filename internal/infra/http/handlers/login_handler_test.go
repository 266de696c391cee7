package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type stubAuthGateway struct {
	user *entity.AuthUser
	err  error
}

func (s *stubAuthGateway) GetSession(ctx context.Context) (*entity.AuthUser, error) {
	return nil, nil
}

func (s *stubAuthGateway) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	return s.user, s.err
}

func (s *stubAuthGateway) SignOut(ctx context.Context) error { return nil }

func (s *stubAuthGateway) Subscribe() (<-chan entity.AuthEvent, func()) {
	return make(chan entity.AuthEvent), func() {}
}

type stubProfileRepo struct{}

func (stubProfileRepo) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return nil, nil
}

func TestLoginFormShowsUnconfiguredNotice(t *testing.T) {
	sessions := usecase.NewSessionCoordinator(&stubAuthGateway{}, stubProfileRepo{}, nil)
	h := NewLoginHandler(sessions, testRenderer(t), false, "/sunny", nil)

	rec := httptest.NewRecorder()
	h.ShowForm(rec, httptest.NewRequest(http.MethodGet, "/sunny/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend not configured")
}

func TestPagesCarryVisibilityBeacon(t *testing.T) {
	sessions := usecase.NewSessionCoordinator(&stubAuthGateway{}, stubProfileRepo{}, nil)
	h := NewLoginHandler(sessions, testRenderer(t), true, "/sunny", nil)

	rec := httptest.NewRecorder()
	h.ShowForm(rec, httptest.NewRequest(http.MethodGet, "/sunny/login", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "visibilitychange")
	assert.Contains(t, body, "/sunny/visibility")
}

func TestLoginSubmitRedirectsToReturnPath(t *testing.T) {
	gw := &stubAuthGateway{user: &entity.AuthUser{ID: "u1", Email: "admin@example.com"}}
	sessions := usecase.NewSessionCoordinator(gw, stubProfileRepo{}, nil)
	h := NewLoginHandler(sessions, testRenderer(t), true, "/sunny", nil)

	form := url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
		"from":     {"/sunny/cta"},
	}
	req := httptest.NewRequest(http.MethodPost, "/sunny/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sunny/cta", rec.Header().Get("Location"))
}

func TestLoginSubmitRejectsForeignReturnPath(t *testing.T) {
	gw := &stubAuthGateway{user: &entity.AuthUser{ID: "u1"}}
	sessions := usecase.NewSessionCoordinator(gw, stubProfileRepo{}, nil)
	h := NewLoginHandler(sessions, testRenderer(t), true, "/sunny", nil)

	form := url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
		"from":     {"https://evil.example.com/"},
	}
	req := httptest.NewRequest(http.MethodPost, "/sunny/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sunny/sales", rec.Header().Get("Location"))
}

func TestLoginSubmitShowsFailure(t *testing.T) {
	gw := &stubAuthGateway{err: assert.AnError}
	sessions := usecase.NewSessionCoordinator(gw, stubProfileRepo{}, nil)
	h := NewLoginHandler(sessions, testRenderer(t), true, "/sunny", nil)

	form := url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	}
	req := httptest.NewRequest(http.MethodPost, "/sunny/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in failed")
}
