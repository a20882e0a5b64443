package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

func newAuthSvc(store *stubStore) *AuthService {
	return NewAuthService(store, PlainSealer{}, zerolog.Nop())
}

func TestAuthService_Admin_CaseInsensitiveUsername(t *testing.T) {
	store := newStubStore()
	svc := newAuthSvc(store)

	user, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "ADMIN", Password: "admin123", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != domain.DefaultAdminID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if store.session == nil || store.session.ID != domain.DefaultAdminID {
		t.Fatalf("session not written: %+v", store.session)
	}
	if store.session.Password != "admin123" {
		t.Fatalf("session must hold the full snapshot")
	}
}

func TestAuthService_Admin_PasswordIsCaseSensitive(t *testing.T) {
	store := newStubStore()
	svc := newAuthSvc(store)

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "admin", Password: "ADMIN123", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("expected ErrAuthenticationRejected, got %v", err)
	}
	if store.session != nil {
		t.Fatalf("rejected login must not touch the session")
	}
}

func TestAuthService_Validation(t *testing.T) {
	svc := newAuthSvc(newStubStore())

	cases := []ports.LoginInput{
		{Username: "  ", Password: "x", Role: domain.RoleGuest},
		{Username: "x", Password: "", Role: domain.RoleGuest},
		{Username: "x", Password: "y", Role: "owner"},
	}
	for _, in := range cases {
		if _, err := svc.Authenticate(context.Background(), in); !errors.Is(err, domain.ErrValidationFailed) {
			t.Errorf("input %+v: expected ErrValidationFailed, got %v", in, err)
		}
	}
}

func TestAuthService_PasswordWhitespace(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	svc := newAuthSvc(store)

	if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: "visitor", Password: "   ", Role: domain.RoleGuest}); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("blank password: expected ErrValidationFailed, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: "visitor", Password: " pw ", Role: domain.RoleGuest}); err != nil {
		t.Fatalf("register guest: %v", err)
	}
	if got := store.users[len(store.users)-1].Password; got != " pw " {
		t.Fatalf("password stored as %q, want it verbatim", got)
	}
	if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: "visitor", Password: "pw", Role: domain.RoleGuest}); !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("trimmed password must not match, got %v", err)
	}
}

func TestAuthService_Member_RequiresClub(t *testing.T) {
	store := newStubStore()
	store.users = append(store.users, domain.NewMember("member-1", "gdg_0001", "pw", "gdg"))
	svc := newAuthSvc(store)

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: "pw", Role: domain.RoleMember})
	if !errors.Is(err, domain.ErrMissingClub) {
		t.Fatalf("expected ErrMissingClub, got %v", err)
	}
}

func TestAuthService_Member_RequiresExactClubMatch(t *testing.T) {
	store := newStubStore()
	store.users = append(store.users, domain.NewMember("member-1", "gdg_0001", "pw", "gdg"))
	svc := newAuthSvc(store)

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: "pw", Role: domain.RoleMember, ClubID: "stic"})
	if !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("expected ErrAuthenticationRejected, got %v", err)
	}

	user, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: "pw", Role: domain.RoleMember, ClubID: "gdg"})
	if err != nil {
		t.Fatalf("login with the right club failed: %v", err)
	}
	if !user.BelongsTo("gdg") {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Member_CannotLoginAsAdmin(t *testing.T) {
	store := newStubStore()
	store.users = append(store.users, domain.NewMember("member-1", "gdg_0001", "pw", "gdg"))
	svc := newAuthSvc(store)

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: "pw", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("expected ErrAuthenticationRejected, got %v", err)
	}
}

func TestAuthService_Guest_SelfRegistration(t *testing.T) {
	store := newStubStore()
	svc := newAuthSvc(store)
	ctx := context.Background()
	isVisitor := func(u domain.User) bool { return u.Role == domain.RoleGuest && u.SameUsername("visitor") }

	first, err := svc.Authenticate(ctx, ports.LoginInput{Username: "visitor", Password: "pw", Role: domain.RoleGuest})
	if err != nil {
		t.Fatalf("first guest login failed: %v", err)
	}
	if n := store.countUsers(isVisitor); n != 1 {
		t.Fatalf("expected exactly one guest, got %d", n)
	}

	second, err := svc.Authenticate(ctx, ports.LoginInput{Username: "Visitor", Password: "pw", Role: domain.RoleGuest})
	if err != nil {
		t.Fatalf("second guest login failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same guest, got %s and %s", first.ID, second.ID)
	}
	if n := store.countUsers(isVisitor); n != 1 {
		t.Fatalf("guest duplicated: %d", n)
	}

	store.session = nil
	if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: "visitor", Password: "other", Role: domain.RoleGuest}); !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("expected ErrAuthenticationRejected, got %v", err)
	}
	if store.session != nil {
		t.Fatalf("rejected guest login wrote a session")
	}
}

func TestAuthService_Guest_RegistrationWriteFailure(t *testing.T) {
	store := newStubStore()
	store.failUsersWrite = true
	svc := newAuthSvc(store)

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "visitor", Password: "pw", Role: domain.RoleGuest})
	if !errors.Is(err, errStubWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	if store.session != nil {
		t.Fatalf("session written despite failed registration")
	}
}

func TestAuthService_BcryptSealer(t *testing.T) {
	sealer := BcryptSealer{Cost: 4}
	hash, err := sealer.Seal("s3cret")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	store := newStubStore()
	store.users = append(store.users, domain.NewMember("member-1", "gdg_0001", hash, "gdg"))
	svc := NewAuthService(store, sealer, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: "s3cret", Role: domain.RoleMember, ClubID: "gdg"}); err != nil {
		t.Fatalf("hashed login failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), ports.LoginInput{Username: "gdg_0001", Password: hash, Role: domain.RoleMember, ClubID: "gdg"}); !errors.Is(err, domain.ErrAuthenticationRejected) {
		t.Fatalf("the stored hash must not work as a password, got %v", err)
	}
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	store := newStubStore()
	svc := newAuthSvc(store)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: "admin", Password: "admin123", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("login: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := svc.Logout(ctx); err != nil {
			t.Fatalf("logout %d: %v", i, err)
		}
		if u, _ := svc.Session(ctx); u != nil {
			t.Fatalf("session still present after logout %d", i)
		}
	}
}

func TestGate_Enter(t *testing.T) {
	store := newStubStore()
	gate := NewGate(store)
	ctx := context.Background()

	if _, err := gate.Enter(ctx, domain.RoleAdmin); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	member := domain.NewMember("member-1", "gdg_0001", "pw", "gdg")
	store.session = &member

	if _, err := gate.Enter(ctx, domain.RoleAdmin); !errors.Is(err, domain.ErrWrongScreen) {
		t.Fatalf("expected ErrWrongScreen, got %v", err)
	}
	if _, err := gate.Enter(ctx, domain.RoleGuest); !errors.Is(err, domain.ErrWrongScreen) {
		t.Fatalf("member must not enter the guest screen, got %v", err)
	}
	user, err := gate.Enter(ctx, domain.RoleMember)
	if err != nil || user.ID != "member-1" {
		t.Fatalf("member screen: user=%+v err=%v", user, err)
	}
}

func TestAuthService_Property_GuestRegistrationIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newStubStore()
		svc := newAuthSvc(store)
		ctx := context.Background()

		username := rapid.StringMatching(`[a-z][a-z0-9]{2,12}`).Draw(t, "username")
		password := rapid.StringMatching(`[A-Za-z0-9]{4,12}`).Draw(t, "password")
		logins := rapid.IntRange(1, 5).Draw(t, "logins")

		var firstID string
		for i := 0; i < logins; i++ {
			user, err := svc.Authenticate(ctx, ports.LoginInput{Username: username, Password: password, Role: domain.RoleGuest})
			if err != nil {
				t.Fatalf("login %d: %v", i, err)
			}
			if i == 0 {
				firstID = user.ID
			} else if user.ID != firstID {
				t.Fatalf("login %d returned %s, want %s", i, user.ID, firstID)
			}
		}
		if n := store.countUsers(func(u domain.User) bool { return u.Role == domain.RoleGuest }); n != 1 {
			t.Fatalf("expected one guest, got %d", n)
		}

		if _, err := svc.Authenticate(ctx, ports.LoginInput{Username: username, Password: password + "x", Role: domain.RoleGuest}); !errors.Is(err, domain.ErrAuthenticationRejected) {
			t.Fatalf("expected ErrAuthenticationRejected, got %v", err)
		}
	})
}
