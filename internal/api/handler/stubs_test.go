package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, in ports.LoginInput) (*domain.User, error)
	sessionFn      func(ctx context.Context) (*domain.User, error)
	logoutFn       func(ctx context.Context) error
}

func (s *stubAuthService) Authenticate(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	return s.authenticateFn(ctx, in)
}

func (s *stubAuthService) Session(ctx context.Context) (*domain.User, error) {
	return s.sessionFn(ctx)
}

func (s *stubAuthService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

type stubIssuer struct{}

func (stubIssuer) Issue(u domain.User) (string, time.Time, error) {
	return "token-for-" + u.ID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type stubClubService struct {
	listFn   func(ctx context.Context) ([]ports.ClubSummary, error)
	createFn func(ctx context.Context, in ports.ClubInput) (*domain.Club, error)
	updateFn func(ctx context.Context, id string, in ports.ClubInput) (*ports.CascadeResult, error)
	deleteFn func(ctx context.Context, id string) (*ports.CascadeResult, error)
}

func (s *stubClubService) List(ctx context.Context) ([]ports.ClubSummary, error) {
	return s.listFn(ctx)
}

func (s *stubClubService) Create(ctx context.Context, in ports.ClubInput) (*domain.Club, error) {
	return s.createFn(ctx, in)
}

func (s *stubClubService) Update(ctx context.Context, id string, in ports.ClubInput) (*ports.CascadeResult, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubClubService) Delete(ctx context.Context, id string) (*ports.CascadeResult, error) {
	return s.deleteFn(ctx, id)
}

type stubMemberService struct {
	ports.MemberService
	listFn     func(ctx context.Context) ([]ports.MemberView, error)
	addFn      func(ctx context.Context, in ports.MemberInput) (*domain.User, error)
	generateFn func(ctx context.Context, clubID string) (*ports.Credentials, error)
}

func (s *stubMemberService) List(ctx context.Context) ([]ports.MemberView, error) {
	return s.listFn(ctx)
}

func (s *stubMemberService) Add(ctx context.Context, in ports.MemberInput) (*domain.User, error) {
	return s.addFn(ctx, in)
}

func (s *stubMemberService) GenerateCredentials(ctx context.Context, clubID string) (*ports.Credentials, error) {
	return s.generateFn(ctx, clubID)
}

type stubEventService struct {
	ports.EventService
	listForSessionFn func(ctx context.Context) (*ports.MemberEvents, error)
	createFn         func(ctx context.Context, in ports.EventInput) (*domain.Event, error)
}

func (s *stubEventService) ListForSession(ctx context.Context) (*ports.MemberEvents, error) {
	return s.listForSessionFn(ctx)
}

func (s *stubEventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	return s.createFn(ctx, in)
}

type stubGuestService struct {
	feedFn func(ctx context.Context) (*ports.GuestFeed, error)
}

func (s *stubGuestService) Feed(ctx context.Context) (*ports.GuestFeed, error) {
	return s.feedFn(ctx)
}

// newContext builds an echo context with the package validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
