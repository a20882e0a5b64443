package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// EventInput carries the member-editable fields of an event.
type EventInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Date        string `validate:"required"`
	Time        string `validate:"required"`
}

// MemberEvents is the member screen: every event, plus the ones the member created.
type MemberEvents struct {
	All []domain.Event
	Own []domain.Event
}

// EventService publishes events on behalf of the signed-in member.
// Create, Update and Delete read the session slot to find the acting member.
type EventService interface {
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListForSession(ctx context.Context) (*MemberEvents, error)
	Create(ctx context.Context, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
