package cli

import (
	"context"
	"fmt"

	"github.com/structmc/structmc/pkg/store"
)

// openStore creates the configured run store. The "none" backend returns
// nil, nil: callers skip persistence. The returned closer releases any
// connection the backend holds and is always safe to call.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case "none":
		return nil, noop, nil
	case "memory":
		return store.NewMemoryStore(), noop, nil
	case "file":
		s, err := store.NewFileStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "redis":
		s, err := store.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case "mongo":
		s, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close(context.Background()) }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
