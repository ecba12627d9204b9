package mongo

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// Module wires MongoDB storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.IndexRepository { return s.Indexes() },
		func(s *Storage) repository.CourseRepository { return s.Courses() },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.HistoryRepository { return s.History() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.MongoURI, p.Config.Database, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return storage.Close(ctx)
		},
	})
}
