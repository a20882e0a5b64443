package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// ClubService implements club CRUD and the cascades that keep members and
// events consistent with their club. All collections touched by a mutation
// are read and recomputed, then written in a single batch.
type ClubService struct {
	store ports.Store
	log   zerolog.Logger
}

func NewClubService(store ports.Store, log zerolog.Logger) *ClubService {
	return &ClubService{store: store, log: log}
}

func trimClub(in ports.ClubInput) ports.ClubInput {
	return ports.ClubInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
}

// List returns every club with its member and event counts.
func (s *ClubService) List(ctx context.Context) ([]ports.ClubSummary, error) {
	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	members := make(map[string]int)
	for _, u := range users {
		if id, ok := u.ClubID(); ok {
			members[id]++
		}
	}
	published := make(map[string]int)
	for _, e := range events {
		published[e.ClubID]++
	}

	out := make([]ports.ClubSummary, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, ports.ClubSummary{Club: c, MemberCount: members[c.ID], EventCount: published[c.ID]})
	}
	return out, nil
}

// Create appends a club whose id is derived from its name.
func (s *ClubService) Create(ctx context.Context, in ports.ClubInput) (*domain.Club, error) {
	in = trimClub(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}

	club := domain.Club{ID: domain.ClubID(in.Name), Name: in.Name, Description: in.Description}
	if _, exists := domain.FindClub(clubs, club.ID); exists {
		return nil, domain.ErrDuplicateClub
	}

	if err := s.store.SaveClubs(ctx, append(clubs, club)); err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}

	s.log.Info().Str("club_id", club.ID).Msg("club created")
	return &club, nil
}

// Update replaces the name and description of a club and rewrites the cached
// club name on every event it owns. The id never changes.
func (s *ClubService) Update(ctx context.Context, id string, in ports.ClubInput) (*ports.CascadeResult, error) {
	in = trimClub(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}

	idx := -1
	for i, c := range clubs {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrUnknownClub
	}

	updated := make([]domain.Club, len(clubs))
	copy(updated, clubs)
	updated[idx].Name = in.Name
	updated[idx].Description = in.Description

	renamed := make([]domain.Event, len(events))
	res := &ports.CascadeResult{Club: updated[idx]}
	for i, e := range events {
		if e.ClubID == id {
			e.ClubName = in.Name
			res.EventsRenamed++
		}
		renamed[i] = e
	}

	batch := ports.Batch{Clubs: updated}
	if res.EventsRenamed > 0 {
		batch.Events = renamed
	}
	if err := s.store.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}

	s.log.Info().Str("club_id", id).Int("events_renamed", res.EventsRenamed).Msg("club updated")
	return res, nil
}

// Delete removes the club, every member bound to it and every event it owns.
func (s *ClubService) Delete(ctx context.Context, id string) (*ports.CascadeResult, error) {
	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete club: %w", err)
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete club: %w", err)
	}
	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete club: %w", err)
	}

	club, ok := domain.FindClub(clubs, id)
	if !ok {
		return nil, domain.ErrUnknownClub
	}
	res := &ports.CascadeResult{Club: club}

	keptClubs := make([]domain.Club, 0, len(clubs)-1)
	for _, c := range clubs {
		if c.ID != id {
			keptClubs = append(keptClubs, c)
		}
	}
	keptUsers := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.BelongsTo(id) {
			res.MembersRemoved++
			continue
		}
		keptUsers = append(keptUsers, u)
	}
	keptEvents := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.ClubID == id {
			res.EventsRemoved++
			continue
		}
		keptEvents = append(keptEvents, e)
	}

	if err := s.store.SaveBatch(ctx, ports.Batch{Clubs: keptClubs, Users: keptUsers, Events: keptEvents}); err != nil {
		return nil, fmt.Errorf("delete club: %w", err)
	}

	s.log.Info().
		Str("club_id", id).
		Int("members_removed", res.MembersRemoved).
		Int("events_removed", res.EventsRemoved).
		Msg("club deleted")
	return res, nil
}
