// Package store implements ports.Store as JSON documents kept in named text
// slots of any ports.KeyValueStore, using the same layout the portal has always
// written to browser storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// Slot names.
const (
	KeyClubs   = "clubs"
	KeyUsers   = "users"
	KeyEvents  = "events"
	KeySession = "currentUser"
)

// Keys lists every slot the store owns, in dump order.
var Keys = []string{KeyClubs, KeyUsers, KeyEvents, KeySession}

type Store struct {
	kv            ports.KeyValueStore
	adminPassword string
	log           zerolog.Logger
}

type Option func(*Store)

// WithDefaultAdmin sets the stored password of the seeded administrator. It
// must already be in sealed form.
func WithDefaultAdmin(sealedPassword string) Option {
	return func(s *Store) { s.adminPassword = sealedPassword }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(kv ports.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:            kv,
		adminPassword: domain.DefaultAdminPassword,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Store = (*Store)(nil)

// Clubs seeds the default clubs when the slot has never been written.
// An explicitly empty list stays empty.
func (s *Store) Clubs(ctx context.Context) ([]domain.Club, error) {
	var clubs []domain.Club
	found, err := s.load(ctx, KeyClubs, &clubs)
	if err != nil {
		return nil, err
	}
	if !found {
		clubs = domain.DefaultClubs()
		if err := s.save(ctx, KeyClubs, clubs); err != nil {
			return nil, err
		}
		s.log.Info().Int("clubs", len(clubs)).Msg("seeded default clubs")
	}
	return nonNil(clubs), nil
}

func (s *Store) SaveClubs(ctx context.Context, clubs []domain.Club) error {
	return s.save(ctx, KeyClubs, nonNil(clubs))
}

// Users appends the default administrator whenever the collection holds no admin.
func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := s.load(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			return users, nil
		}
	}

	users = append(users, domain.NewAdmin(domain.DefaultAdminID, domain.DefaultAdminUsername, s.adminPassword))
	if err := s.save(ctx, KeyUsers, users); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", domain.DefaultAdminID).Msg("seeded default admin")
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.save(ctx, KeyUsers, nonNil(users))
}

func (s *Store) Events(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if _, err := s.load(ctx, KeyEvents, &events); err != nil {
		return nil, err
	}
	return nonNil(events), nil
}

func (s *Store) SaveEvents(ctx context.Context, events []domain.Event) error {
	return s.save(ctx, KeyEvents, nonNil(events))
}

// SaveBatch encodes every non-nil collection of b and writes them together.
func (s *Store) SaveBatch(ctx context.Context, b ports.Batch) error {
	values := make(map[string]string, 3)
	encode := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("save batch %s: %w", key, err)
		}
		values[key] = string(raw)
		return nil
	}
	if b.Clubs != nil {
		if err := encode(KeyClubs, b.Clubs); err != nil {
			return err
		}
	}
	if b.Users != nil {
		if err := encode(KeyUsers, b.Users); err != nil {
			return err
		}
	}
	if b.Events != nil {
		if err := encode(KeyEvents, b.Events); err != nil {
			return err
		}
	}
	if len(values) == 0 {
		return nil
	}
	if err := s.kv.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

func (s *Store) Session(ctx context.Context) (*domain.User, error) {
	var user *domain.User
	if _, err := s.load(ctx, KeySession, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) SaveSession(ctx context.Context, user domain.User) error {
	return s.save(ctx, KeySession, user)
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear %s: %w", KeySession, err)
	}
	return nil
}

// Reset deletes every slot. The next read seeds clubs and the admin again.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range Keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	s.log.Warn().Msg("store reset")
	return nil
}

// Dump returns the raw text of every slot that exists.
func (s *Store) Dump(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(Keys))
	for _, key := range Keys {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", key, err)
		}
		if ok {
			out[key] = json.RawMessage(raw)
		}
	}
	return out, nil
}

// Ping checks the backing medium.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("load %s: corrupt slot: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
