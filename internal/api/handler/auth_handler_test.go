package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			if in.Username != "gdg_0001" || in.Role != domain.RoleMember || in.ClubID != "gdg" {
				t.Fatalf("unexpected input: %+v", in)
			}
			u := domain.NewMember("member-1", in.Username, "pw", in.ClubID)
			return &u, nil
		},
	}
	handler := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodPost, "/auth/login", `{"username":"gdg_0001","password":"pw","role":"member","clubId":"gdg"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token-for-member-1" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["clubId"] != "gdg" || user["role"] != "member" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in login response")
	}
}

func TestAuthHandler_Login_RejectionMessages(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			return nil, domain.ErrAuthenticationRejected
		},
	}
	handler := NewAuthHandler(stub, stubIssuer{})

	cases := map[string]string{
		"admin":  msgRejected,
		"guest":  msgRejected,
		"member": msgMemberRejected,
	}
	for role, want := range cases {
		c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"x","password":"y","role":"`+role+`","clubId":"gdg"}`)
		err := handler.Login(c)
		if httpCode(err) != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", role, err)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: unexpected message %v", role, err)
		}
	}
}

func TestAuthHandler_Login_BadRequests(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			return nil, domain.ErrMissingClub
		},
	}
	handler := NewAuthHandler(stub, stubIssuer{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"username":`, http.StatusBadRequest},
		{"missing password", `{"username":"x","role":"admin"}`, http.StatusUnprocessableEntity},
		{"unknown role", `{"username":"x","password":"y","role":"owner"}`, http.StatusUnprocessableEntity},
		{"member without club", `{"username":"x","password":"y","role":"member"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/auth/login", tc.body)
			if code := httpCode(handler.Login(c)); code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, code)
			}
		})
	}
}

func TestAuthHandler_Login_UnexpectedErrorPassesThrough(t *testing.T) {
	boom := errors.New("store offline")
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) { return nil, boom },
	}
	c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"x","password":"y","role":"guest"}`)
	if err := NewAuthHandler(stub, stubIssuer{}).Login(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthHandler_LogoutAndSession(t *testing.T) {
	var session *domain.User
	admin := domain.NewAdmin(domain.DefaultAdminID, "admin", "admin123")
	session = &admin
	stub := &stubAuthService{
		sessionFn: func(ctx context.Context) (*domain.User, error) { return session, nil },
		logoutFn: func(ctx context.Context) error {
			session = nil
			return nil
		},
	}
	handler := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodGet, "/auth/session", "")
	if err := handler.Session(c); err != nil {
		t.Fatalf("session: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"authenticated":true`) || strings.Contains(rec.Body.String(), "admin123") {
		t.Fatalf("unexpected session body: %s", rec.Body.String())
	}

	for i := 0; i < 2; i++ {
		c, rec = newContext(http.MethodPost, "/auth/logout", "")
		if err := handler.Logout(c); err != nil {
			t.Fatalf("logout %d: %v", i, err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}

	c, rec = newContext(http.MethodGet, "/auth/session", "")
	if err := handler.Session(c); err != nil {
		t.Fatalf("session: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"authenticated":false}` {
		t.Fatalf("unexpected empty session body: %s", rec.Body.String())
	}
}
