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

type eventService struct {
	store ports.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewEventService returns an EventService acting for whoever holds the session.
func NewEventService(store ports.Store, log zerolog.Logger) ports.EventService {
	return &eventService{store: store, log: log, now: time.Now}
}

func trimEvent(in ports.EventInput) ports.EventInput {
	return ports.EventInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
	}
}

// actingMember resolves the session to a member and the club it publishes for.
func (s *eventService) actingMember(ctx context.Context) (domain.User, domain.Club, error) {
	user, err := s.store.Session(ctx)
	if err != nil {
		return domain.User{}, domain.Club{}, err
	}
	if user == nil {
		return domain.User{}, domain.Club{}, domain.ErrNoSession
	}
	clubID, ok := user.ClubID()
	if !ok {
		return domain.User{}, domain.Club{}, domain.ErrForbidden
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return domain.User{}, domain.Club{}, err
	}
	club, found := domain.FindClub(clubs, clubID)
	if !found {
		return domain.User{}, domain.Club{}, domain.ErrUnknownClub
	}
	return *user, club, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListForSession returns all events and the subset created by the session user.
func (s *eventService) ListForSession(ctx context.Context) (*ports.MemberEvents, error) {
	user, err := s.store.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("list member events: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNoSession
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list member events: %w", err)
	}

	out := &ports.MemberEvents{All: events, Own: make([]domain.Event, 0)}
	for _, e := range events {
		if e.CreatedBy == user.ID {
			out.Own = append(out.Own, e)
		}
	}
	return out, nil
}

// Create publishes an event under the session member's club.
func (s *eventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	in = trimEvent(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	member, club, err := s.actingMember(ctx)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	now := s.now().UTC()
	event := domain.Event{
		ID:          ids.New("event", now),
		Title:       in.Title,
		Description: in.Description,
		ClubID:      club.ID,
		ClubName:    club.Name,
		Date:        in.Date,
		Time:        in.Time,
		CreatedAt:   now,
		CreatedBy:   member.ID,
	}

	if err := s.store.SaveEvents(ctx, append(events, event)); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", event.ID).Str("club_id", club.ID).Str("user_id", member.ID).Msg("event created")
	return &event, nil
}

// Update edits an event created by the session member and re-stamps its club
// from the session. CreatedAt and CreatedBy never change.
func (s *eventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	in = trimEvent(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	member, club, err := s.actingMember(ctx)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	idx := domain.FindEvent(events, id)
	if idx < 0 {
		return nil, domain.ErrEventNotFound
	}
	if events[idx].CreatedBy != member.ID {
		return nil, domain.ErrForbidden
	}

	updated := make([]domain.Event, len(events))
	copy(updated, events)
	e := &updated[idx]
	e.Title, e.Description, e.Date, e.Time = in.Title, in.Description, in.Date, in.Time
	e.ClubID, e.ClubName = club.ID, club.Name

	if err := s.store.SaveEvents(ctx, updated); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info().Str("event_id", id).Str("user_id", member.ID).Msg("event updated")
	event := updated[idx]
	return &event, nil
}

// Delete removes an event created by the session member.
func (s *eventService) Delete(ctx context.Context, id string) error {
	member, _, err := s.actingMember(ctx)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	idx := domain.FindEvent(events, id)
	if idx < 0 {
		return domain.ErrEventNotFound
	}
	if events[idx].CreatedBy != member.ID {
		return domain.ErrForbidden
	}

	kept := make([]domain.Event, 0, len(events)-1)
	kept = append(kept, events[:idx]...)
	kept = append(kept, events[idx+1:]...)

	if err := s.store.SaveEvents(ctx, kept); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info().Str("event_id", id).Str("user_id", member.ID).Msg("event deleted")
	return nil
}

type guestService struct {
	store ports.Store
	now   func() time.Time
}

// NewGuestService returns the read-only guest feed.
func NewGuestService(store ports.Store) ports.GuestService {
	return &guestService{store: store, now: time.Now}
}

// Feed lists clubs and events, flagging events created within the last 24 hours.
func (s *guestService) Feed(ctx context.Context) (*ports.GuestFeed, error) {
	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("guest feed: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("guest feed: %w", err)
	}

	now := s.now()
	feed := &ports.GuestFeed{
		Clubs:         clubs,
		Events:        make([]ports.FeedEvent, 0, len(events)),
		Notifications: make([]domain.Event, 0),
	}
	for _, e := range events {
		isNew := e.IsNew(now)
		feed.Events = append(feed.Events, ports.FeedEvent{Event: e, IsNew: isNew})
		if isNew {
			feed.Notifications = append(feed.Notifications, e)
		}
	}
	return feed, nil
}
