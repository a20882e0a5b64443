package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
	"github.com/medicaps/clubs-portal/internal/pkg/ids"
)

// AuthService implements login, guest self-registration and logout.
type AuthService struct {
	store  ports.Store
	sealer CredentialSealer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(store ports.Store, sealer CredentialSealer, log zerolog.Logger) *AuthService {
	if sealer == nil {
		sealer = PlainSealer{}
	}
	return &AuthService{store: store, sealer: sealer, log: log, now: time.Now}
}

// loginFields is checked for presence only: surrounding whitespace is trimmed
// before the required check, but the password itself is matched and sealed
// exactly as typed.
type loginFields struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"oneof=admin member guest"`
}

// Authenticate resolves the credentials for the requested role and, on
// success, writes the user into the session slot.
//
// Usernames match case-insensitively, passwords exactly. A guest username that
// has never been seen is registered on the spot with the supplied password.
// Any mismatch yields domain.ErrAuthenticationRejected without saying which
// part was wrong.
func (s *AuthService) Authenticate(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	fields := loginFields{
		Username: strings.TrimSpace(in.Username),
		Password: strings.TrimSpace(in.Password),
		Role:     string(in.Role),
	}
	if err := validateInput(fields); err != nil {
		return nil, err
	}
	if in.Role == domain.RoleMember && strings.TrimSpace(in.ClubID) == "" {
		return nil, domain.ErrMissingClub
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	var user *domain.User
	switch in.Role {
	case domain.RoleAdmin:
		user = s.match(users, in, func(u domain.User) bool { return u.Role == domain.RoleAdmin })
	case domain.RoleMember:
		user = s.match(users, in, func(u domain.User) bool { return u.BelongsTo(in.ClubID) })
	case domain.RoleGuest:
		user, err = s.guest(ctx, users, in)
		if err != nil {
			return nil, err
		}
	}

	if user == nil {
		s.log.Warn().Str("role", string(in.Role)).Msg("login rejected")
		return nil, domain.ErrAuthenticationRejected
	}

	if err := s.store.SaveSession(ctx, *user); err != nil {
		return nil, fmt.Errorf("authenticate: save session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return user, nil
}

func (s *AuthService) match(users []domain.User, in ports.LoginInput, accept func(domain.User) bool) *domain.User {
	for _, u := range users {
		if u.SameUsername(in.Username) && accept(u) && s.sealer.Match(u.Password, in.Password) {
			return &u
		}
	}
	return nil
}

// guest returns the existing guest for the username if the password matches,
// nil if it does not, or a freshly registered guest when none exists.
func (s *AuthService) guest(ctx context.Context, users []domain.User, in ports.LoginInput) (*domain.User, error) {
	for _, u := range users {
		if u.Role == domain.RoleGuest && u.SameUsername(in.Username) {
			if s.sealer.Match(u.Password, in.Password) {
				return &u, nil
			}
			return nil, nil
		}
	}

	sealed, err := s.sealer.Seal(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register guest: %w", err)
	}
	g := domain.NewGuest(ids.New("guest", s.now()), in.Username, sealed)
	if err := s.store.SaveUsers(ctx, append(users, g)); err != nil {
		return nil, fmt.Errorf("register guest: %w", err)
	}

	s.log.Info().Str("user_id", g.ID).Msg("guest registered")
	return &g, nil
}

// Session returns the signed-in user or nil.
func (s *AuthService) Session(ctx context.Context) (*domain.User, error) {
	return s.store.Session(ctx)
}

// Logout empties the session slot; it is safe to call when nobody is signed in.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Debug().Msg("session cleared")
	return nil
}

// Gate is the screen guard: a screen may only be entered by a session whose
// role is exactly the screen's role. It is evaluated once per entry.
type Gate struct {
	store ports.Store
}

func NewGate(store ports.Store) *Gate {
	return &Gate{store: store}
}

func (g *Gate) Enter(ctx context.Context, screen domain.Role) (*domain.User, error) {
	user, err := g.store.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("enter %s: %w", screen, err)
	}
	if user == nil {
		return nil, domain.ErrNoSession
	}
	if user.Role != screen {
		return nil, domain.ErrWrongScreen
	}
	return user, nil
}
