package service

import (
	"context"
	"errors"
	"time"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

var errStubWrite = errors.New("stub: write failed")

type stubStore struct {
	clubs   []domain.Club
	users   []domain.User
	events  []domain.Event
	session *domain.User

	failUsersWrite  bool
	failEventsWrite bool
	writes          int
}

func newStubStore() *stubStore {
	return &stubStore{
		clubs: domain.DefaultClubs(),
		users: []domain.User{domain.NewAdmin(domain.DefaultAdminID, domain.DefaultAdminUsername, domain.DefaultAdminPassword)},
	}
}

func (s *stubStore) Clubs(context.Context) ([]domain.Club, error) {
	return append([]domain.Club(nil), s.clubs...), nil
}

func (s *stubStore) SaveClubs(_ context.Context, clubs []domain.Club) error {
	s.writes++
	s.clubs = append([]domain.Club(nil), clubs...)
	return nil
}

func (s *stubStore) Users(context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), s.users...), nil
}

func (s *stubStore) SaveUsers(_ context.Context, users []domain.User) error {
	if s.failUsersWrite {
		return errStubWrite
	}
	s.writes++
	s.users = append([]domain.User(nil), users...)
	return nil
}

func (s *stubStore) Events(context.Context) ([]domain.Event, error) {
	return append([]domain.Event(nil), s.events...), nil
}

func (s *stubStore) SaveEvents(_ context.Context, events []domain.Event) error {
	if s.failEventsWrite {
		return errStubWrite
	}
	s.writes++
	s.events = append([]domain.Event(nil), events...)
	return nil
}

// SaveBatch fails as a whole when any collection it touches is set to fail.
func (s *stubStore) SaveBatch(_ context.Context, b ports.Batch) error {
	if (b.Users != nil && s.failUsersWrite) || (b.Events != nil && s.failEventsWrite) {
		return errStubWrite
	}
	s.writes++
	if b.Clubs != nil {
		s.clubs = append([]domain.Club(nil), b.Clubs...)
	}
	if b.Users != nil {
		s.users = append([]domain.User(nil), b.Users...)
	}
	if b.Events != nil {
		s.events = append([]domain.Event(nil), b.Events...)
	}
	return nil
}

func (s *stubStore) Session(context.Context) (*domain.User, error) {
	if s.session == nil {
		return nil, nil
	}
	u := *s.session
	return &u, nil
}

func (s *stubStore) SaveSession(_ context.Context, user domain.User) error {
	s.session = &user
	return nil
}

func (s *stubStore) ClearSession(context.Context) error {
	s.session = nil
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func (s *stubStore) countUsers(pred func(domain.User) bool) int {
	n := 0
	for _, u := range s.users {
		if pred(u) {
			n++
		}
	}
	return n
}
