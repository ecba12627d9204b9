package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
)

// MigrationRunner executes registered migrations.
type MigrationRunner interface {
	Up(ctx context.Context, target string) ([]migration.Outcome, error)
	Down(ctx context.Context, steps int) ([]migration.Outcome, error)
	Status(ctx context.Context) ([]model.MigrationStatus, error)
}

// MigrationUseCase validates operator input before running migrations.
type MigrationUseCase struct {
	runner MigrationRunner
}

// NewMigrationUseCase constructs MigrationUseCase.
func NewMigrationUseCase(runner MigrationRunner) *MigrationUseCase {
	return &MigrationUseCase{runner: runner}
}

// Up applies pending migrations up to target; an empty target applies all.
func (u *MigrationUseCase) Up(ctx context.Context, target string) ([]migration.Outcome, error) {
	target = strings.TrimSpace(target)
	if target != "" && !ValidateMigrationName(target) {
		return nil, fmt.Errorf("%s: %w", target, domainErrors.ErrUnknownMigration)
	}
	return u.runner.Up(ctx, target)
}

// Down reverts the last steps applied migrations.
func (u *MigrationUseCase) Down(ctx context.Context, steps int) ([]migration.Outcome, error) {
	if steps <= 0 {
		return nil, domainErrors.ErrInvalidSteps
	}
	return u.runner.Down(ctx, steps)
}

// Status lists migrations with their applied state.
func (u *MigrationUseCase) Status(ctx context.Context) ([]model.MigrationStatus, error) {
	return u.runner.Status(ctx)
}
