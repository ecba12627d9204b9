package migration

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// Module registers the migration set and the runner.
var Module = fx.Module("migration",
	fx.Provide(
		asMigration(NewWithdrawalIndexes),
		asMigration(NewPackageTypes),
		asMigration(NewProfileEditRestriction),
		asMigration(NewHighestPackage),
		newRegistry,
		newRunner,
	),
)

func asMigration(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(Migration)),
		fx.ResultTags(`group:"migrations"`),
	)
}

type registryParams struct {
	fx.In

	Migrations []Migration `group:"migrations"`
}

func newRegistry(p registryParams) (*Registry, error) {
	return NewRegistry(p.Migrations...)
}

type runnerParams struct {
	fx.In

	Registry *Registry
	History  repository.HistoryRepository
	Locker   repository.Locker
	Recorder Recorder
	Logger   *slog.Logger
}

func newRunner(p runnerParams) *Runner {
	return NewRunner(p.Registry, p.History, p.Locker, p.Recorder, p.Logger)
}
