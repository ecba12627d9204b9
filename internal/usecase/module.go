package usecase

import (
	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	pkgAuth "github.com/kitkatcodeskitty/lms-migrate/internal/pkg/auth"
)

// Module provides operator facing use cases to the fx container.
var Module = fx.Provide(
	newOperatorAuthUseCase,
	newMigrationUseCase,
)

type operatorParams struct {
	fx.In

	Config *config.Config
	Hasher pkgAuth.PasswordHasher
	Tokens pkgAuth.Strategy
}

func newOperatorAuthUseCase(p operatorParams) (*OperatorAuthUseCase, error) {
	if hash := p.Config.OperatorPasswordHash; hash != "" {
		if err := pkgAuth.CheckHash(hash); err != nil {
			return nil, err
		}
	}
	return NewOperatorAuthUseCase(p.Config.OperatorLogin, p.Config.OperatorPasswordHash, p.Hasher, p.Tokens), nil
}

func newMigrationUseCase(runner *migration.Runner) *MigrationUseCase {
	return NewMigrationUseCase(runner)
}
