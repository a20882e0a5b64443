package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
	"github.com/medicaps/clubs-portal/internal/core/service"
	"github.com/medicaps/clubs-portal/internal/infrastructure/db/memory"
	"github.com/medicaps/clubs-portal/internal/infrastructure/db/mongo"
	"github.com/medicaps/clubs-portal/internal/infrastructure/db/redis"
	"github.com/medicaps/clubs-portal/internal/infrastructure/db/sqlite"
	"github.com/medicaps/clubs-portal/internal/infrastructure/store"
	"github.com/medicaps/clubs-portal/internal/pkg/config"
)

// backend is an opened slot medium and its release function.
type backend struct {
	name  string
	kv    ports.KeyValueStore
	close func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return &backend{name: config.BackendMemory, kv: memory.New(), close: func() error { return nil }}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &backend{name: config.BackendSQLite, kv: sqlite.NewKV(db), close: db.Close}, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return &backend{name: config.BackendRedis, kv: redis.NewKV(client, cfg.Redis.Prefix), close: client.Close}, nil

	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &backend{
			name:  config.BackendMongo,
			kv:    mongo.NewKVRepository(db),
			close: func() error { return client.Disconnect(context.Background()) },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// newSealer picks the credential mode and the matching seeded-admin option.
func newSealer(cfg *config.Config) (service.CredentialSealer, []store.Option, error) {
	if !cfg.HashPasswords {
		return service.PlainSealer{}, nil, nil
	}
	sealer := service.BcryptSealer{}
	sealed, err := sealer.Seal(domain.DefaultAdminPassword)
	if err != nil {
		return nil, nil, err
	}
	return sealer, []store.Option{store.WithDefaultAdmin(sealed)}, nil
}

// openStore opens the configured backend and wraps it in the typed store.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, service.CredentialSealer, *backend, error) {
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s backend: %w", cfg.Store.Backend, err)
	}
	sealer, opts, err := newSealer(cfg)
	if err != nil {
		_ = b.close()
		return nil, nil, nil, err
	}
	opts = append(opts, store.WithLogger(log))
	return store.New(b.kv, opts...), sealer, b, nil
}
