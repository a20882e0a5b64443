package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// LoginInput is what the login screen submits. ClubID is only read for members.
type LoginInput struct {
	Username string
	Password string
	Role     domain.Role
	ClubID   string
}

// AuthService resolves credentials and owns the session slot.
type AuthService interface {
	Authenticate(ctx context.Context, in LoginInput) (*domain.User, error)
	Session(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

// Gate decides whether the current session may enter a role's screen.
type Gate interface {
	Enter(ctx context.Context, screen domain.Role) (*domain.User, error)
}
