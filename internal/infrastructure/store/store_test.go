package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
	"github.com/medicaps/clubs-portal/internal/core/service"
	"github.com/medicaps/clubs-portal/internal/infrastructure/db/memory"
	"github.com/medicaps/clubs-portal/internal/infrastructure/store"
)

func TestStore_SeedsClubsOnFirstLoad(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := store.New(kv)

	clubs, err := s.Clubs(ctx)
	require.NoError(t, err)
	require.Len(t, clubs, 5)
	assert.Equal(t, []string{"stic", "gdg", "aws", "acm", "ieee"}, []string{clubs[0].ID, clubs[1].ID, clubs[2].ID, clubs[3].ID, clubs[4].ID})

	_, ok, _ := kv.Get(ctx, store.KeyClubs)
	assert.True(t, ok, "seed must be written back")
}

func TestStore_EmptyClubListIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	s := store.New(memory.New())

	require.NoError(t, s.SaveClubs(ctx, nil))
	clubs, err := s.Clubs(ctx)
	require.NoError(t, err)
	assert.Empty(t, clubs)
	assert.NotNil(t, clubs)
}

func TestStore_SeedsAdminWhenMissing(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, store.KeyUsers, `[{"id":"guest-1","username":"v","password":"pw","role":"guest"}]`))
	s := store.New(kv, store.WithDefaultAdmin("sealed"))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	admin := users[1]
	assert.Equal(t, domain.DefaultAdminID, admin.ID)
	assert.Equal(t, domain.DefaultAdminUsername, admin.Username)
	assert.Equal(t, "sealed", admin.Password)

	again, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 2, "admin must be seeded only once")
}

func TestStore_DefaultAdminPassword(t *testing.T) {
	users, err := store.New(memory.New()).Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.DefaultAdminPassword, users[0].Password)
}

func TestStore_BrowserLayout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := store.New(kv)

	created := time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveEvents(ctx, []domain.Event{{
		ID: "event-1", Title: "T", Description: "D", ClubID: "gdg", ClubName: "GDG",
		Date: "2024-06-01", Time: "18:00", CreatedAt: created, CreatedBy: "member-1",
	}}))
	raw, ok, err := kv.Get(ctx, store.KeyEvents)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"event-1","title":"T","description":"D","clubId":"gdg","clubName":"GDG",
		"date":"2024-06-01","time":"18:00","createdAt":"2024-05-30T10:00:00Z","createdBy":"member-1"}]`, raw)

	require.NoError(t, s.SaveUsers(ctx, []domain.User{domain.NewMember("member-1", "gdg_0001", "pw", "gdg")}))
	raw, _, _ = kv.Get(ctx, store.KeyUsers)
	assert.JSONEq(t, `[{"id":"member-1","username":"gdg_0001","password":"pw","role":"member","clubId":"gdg"}]`, raw)
}

func TestStore_Session(t *testing.T) {
	ctx := context.Background()
	s := store.New(memory.New())

	u, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	member := domain.NewMember("member-1", "gdg_0001", "pw", "gdg")
	require.NoError(t, s.SaveSession(ctx, member))
	u, err = s.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, member, *u)

	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.ClearSession(ctx))
	u, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStore_CorruptSlot(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, store.KeyEvents, "{not json"))

	_, err := store.New(kv).Events(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt slot")
}

func TestStore_ResetAndDump(t *testing.T) {
	ctx := context.Background()
	s := store.New(memory.New())

	_, err := s.Clubs(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveSession(ctx, domain.NewGuest("guest-1", "v", "pw")))

	dump, err := s.Dump(ctx)
	require.NoError(t, err)
	assert.Contains(t, dump, store.KeyClubs)
	assert.Contains(t, dump, store.KeySession)
	assert.NotContains(t, dump, store.KeyEvents)

	require.NoError(t, s.Reset(ctx))
	dump, err = s.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, dump)
}

type failingKV struct{ *memory.KV }

var errBackend = errors.New("backend down")

func (failingKV) Set(context.Context, string, string) error { return errBackend }

func TestStore_WriteErrorsAreWrapped(t *testing.T) {
	s := store.New(failingKV{memory.New()})

	_, err := s.Clubs(context.Background())
	require.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "save clubs")
}

func TestStore_SaveBatch(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := store.New(kv)
	require.NoError(t, s.SaveEvents(ctx, []domain.Event{{ID: "event-1", ClubID: "gdg"}}))

	require.NoError(t, s.SaveBatch(ctx, ports.Batch{
		Clubs: []domain.Club{},
		Users: []domain.User{domain.NewGuest("guest-1", "v", "pw")},
	}))

	raw, _, _ := kv.Get(ctx, store.KeyClubs)
	assert.Equal(t, `[]`, raw)
	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", users[0].ID)
	events, err := s.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1, "nil collections must be left untouched")
}

// rejectingKV fails any batch that touches the users slot, like a medium
// that rolls back the whole write.
type rejectingKV struct{ *memory.KV }

func (k rejectingKV) SetMany(ctx context.Context, values map[string]string) error {
	if _, ok := values[store.KeyUsers]; ok {
		return errBackend
	}
	return k.KV.SetMany(ctx, values)
}

func TestStore_ClubDeleteIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := store.New(rejectingKV{memory.New()})
	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveUsers(ctx, append(users, domain.NewMember("member-1", "gdg_0001", "pw", "gdg"))))

	clubs := service.NewClubService(s, zerolog.Nop())
	_, err = clubs.Delete(ctx, "gdg")
	require.ErrorIs(t, err, errBackend)

	remaining, err := s.Clubs(ctx)
	require.NoError(t, err)
	_, ok := domain.FindClub(remaining, "gdg")
	assert.True(t, ok, "club must survive a failed cascade")
	users, err = s.Users(ctx)
	require.NoError(t, err)
	_, ok = domain.FindUser(users, "member-1")
	assert.True(t, ok)
}
