package store

import (
	"context"
	"fmt"

	"formbot/internal/config"
	"formbot/internal/database"
	apperrors "formbot/pkg/errors"
)

// New creates an instrumented Store for the configured backend.
//
// Supported backends:
//
//	"mongo"  - MongoDB, Mongo.Database / Mongo.Collection
//	"sql"    - SQLite or PostgreSQL at Database.URL, table Mongo.Collection
//	"memory" - in-memory (ephemeral, for testing)
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMongo, "":
		client, cerr := database.ConnectMongo(ctx, cfg.Mongo)
		if cerr != nil {
			return nil, apperrors.Connectivity("connect to mongo", cerr)
		}
		s = NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	case config.BackendSQL:
		db, oerr := database.OpenSQL(cfg.Database, cfg.App.Debug)
		if oerr != nil {
			return nil, apperrors.Connectivity("open sql database", oerr)
		}
		s, err = NewSQLStore(db, cfg.Mongo.Collection)
		if err != nil {
			_ = database.CloseSQL(db)
			return nil, err
		}
	case config.BackendMemory:
		s = NewMemoryStore()
	default:
		return nil, apperrors.New(apperrors.ErrCodeConfig,
			fmt.Sprintf("unknown store backend: %q (supported: mongo, sql, memory)", cfg.Store.Backend))
	}
	return Instrument(s), nil
}
