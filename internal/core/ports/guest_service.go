package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// FeedEvent is an event as shown to guests.
type FeedEvent struct {
	domain.Event
	IsNew bool
}

// GuestFeed is the read-only guest screen.
type GuestFeed struct {
	Clubs         []domain.Club
	Events        []FeedEvent
	Notifications []domain.Event // events created within domain.NewEventWindow
}

type GuestService interface {
	Feed(ctx context.Context) (*GuestFeed, error)
}
