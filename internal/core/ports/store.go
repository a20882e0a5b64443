package ports

import (
	"context"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// KeyValueStore is the raw persistence medium: named text slots. A missing key
// is reported with ok=false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every pair or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Store gives typed access to the three collections and the session slot.
//
// Every Save overwrites the whole collection. Callers read the full
// collection, compute the new one and write it back; the last write wins.
type Store interface {
	Clubs(ctx context.Context) ([]domain.Club, error)
	SaveClubs(ctx context.Context, clubs []domain.Club) error

	Users(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	Events(ctx context.Context) ([]domain.Event, error)
	SaveEvents(ctx context.Context, events []domain.Event) error

	// SaveBatch rewrites several collections in one all-or-nothing write.
	SaveBatch(ctx context.Context, b Batch) error

	// Session returns the signed-in user snapshot, or nil when the slot is empty.
	Session(ctx context.Context) (*domain.User, error)
	SaveSession(ctx context.Context, user domain.User) error
	// ClearSession empties the slot. Clearing an empty slot is not an error.
	ClearSession(ctx context.Context) error
}

// Batch is the set of collections one mutation rewrites. A nil field leaves
// that collection untouched; an empty non-nil slice clears it.
type Batch struct {
	Clubs  []domain.Club
	Users  []domain.User
	Events []domain.Event
}
