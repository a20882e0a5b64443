package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// ClubInput carries the editable fields of a club.
type ClubInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

// ClubSummary is a club as listed on the admin screen.
type ClubSummary struct {
	domain.Club
	MemberCount int
	EventCount  int
}

// CascadeResult reports what a club mutation did to dependent records.
type CascadeResult struct {
	Club           domain.Club
	EventsRenamed  int
	MembersRemoved int
	EventsRemoved  int
}

// ClubService manages clubs and keeps users and events consistent with them.
type ClubService interface {
	List(ctx context.Context) ([]ClubSummary, error)
	Create(ctx context.Context, in ClubInput) (*domain.Club, error)
	// Update renames/redescribes a club and rewrites the club name cached on its events.
	Update(ctx context.Context, id string, in ClubInput) (*CascadeResult, error)
	// Delete removes a club together with its members and events.
	Delete(ctx context.Context, id string) (*CascadeResult, error)
}
