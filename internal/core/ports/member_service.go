package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// MemberInput carries a member's credentials and club binding.
type MemberInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	ClubID   string `validate:"required"`
}

// MemberView is a member as listed on the admin screen.
// ClubName is "Unknown Club" when the binding no longer resolves.
type MemberView struct {
	domain.User
	ClubName string
}

// Credentials is a generated onboarding username/password pair.
type Credentials struct {
	Username string
	Password string
}

// MemberService is the administrator's member management.
type MemberService interface {
	List(ctx context.Context) ([]MemberView, error)
	Add(ctx context.Context, in MemberInput) (*domain.User, error)
	Update(ctx context.Context, id string, in MemberInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	GenerateCredentials(ctx context.Context, clubID string) (*Credentials, error)
}
