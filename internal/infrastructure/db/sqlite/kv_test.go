package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "portal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKV(db)
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("/tmp/portal.sqlite")

	assert.True(t, strings.HasPrefix(dsn, "/tmp/portal.sqlite?"))
	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_txlock=immediate")
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	_, ok, err := kv.Get(ctx, "clubs")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "clubs", `[]`))
	require.NoError(t, kv.Set(ctx, "clubs", `[{"id":"gdg"}]`))

	v, ok, err := kv.Get(ctx, "clubs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"gdg"}]`, v)

	require.NoError(t, kv.Delete(ctx, "clubs"))
	require.NoError(t, kv.Delete(ctx, "clubs"))
	_, ok, err = kv.Get(ctx, "clubs")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.Ping(ctx))
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.sqlite")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, NewKV(db).Set(context.Background(), "events", `[]`))
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()
	v, ok, err := NewKV(db).Get(context.Background(), "events")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestKV_SetMany(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	require.NoError(t, kv.SetMany(ctx, map[string]string{"clubs": `[]`, "users": `[{"id":"admin-1"}]`}))
	v, ok, err := kv.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"admin-1"}]`, v)
}

func TestKV_SetManyRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)
	_, err := kv.db.ExecContext(ctx, `CREATE TRIGGER reject_users BEFORE INSERT ON kv
		WHEN NEW.key = 'users' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	err = kv.SetMany(ctx, map[string]string{"clubs": `[]`, "events": `[]`, "users": `[]`})
	require.Error(t, err)

	for _, key := range []string{"clubs", "events", "users"} {
		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "%s written by a rolled back batch", key)
	}
}
