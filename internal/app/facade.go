package app

import (
	"context"
	"time"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	"github.com/kitkatcodeskitty/lms-migrate/internal/usecase"
)

// HealthChecker reports whether the document store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Migrations runs migrations on behalf of operators.
type Migrations interface {
	Up(ctx context.Context, target string) ([]migration.Outcome, error)
	Down(ctx context.Context, steps int) ([]migration.Outcome, error)
	Status(ctx context.Context) ([]model.MigrationStatus, error)
}

// AdminFacade serves the admin API. Migrations started through it outlive
// the request and are bounded by timeout only.
type AdminFacade struct {
	auth       *usecase.OperatorAuthUseCase
	migrations Migrations
	store      HealthChecker
	timeout    time.Duration
}

func NewAdminFacade(auth *usecase.OperatorAuthUseCase, migrations Migrations, store HealthChecker, timeout time.Duration) *AdminFacade {
	return &AdminFacade{auth: auth, migrations: migrations, store: store, timeout: timeout}
}

func (f *AdminFacade) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if f.timeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, f.timeout)
}

func (f *AdminFacade) Login(ctx context.Context, login, password string) (string, error) {
	return f.auth.Login(ctx, login, password)
}

func (f *AdminFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) Status(ctx context.Context) ([]model.MigrationStatus, error) {
	return f.migrations.Status(ctx)
}

func (f *AdminFacade) Up(ctx context.Context, target string) ([]migration.Outcome, error) {
	runCtx, cancel := f.runContext(ctx)
	defer cancel()
	return f.migrations.Up(runCtx, target)
}

func (f *AdminFacade) Down(ctx context.Context, steps int) ([]migration.Outcome, error) {
	runCtx, cancel := f.runContext(ctx)
	defer cancel()
	return f.migrations.Down(runCtx, steps)
}

func (f *AdminFacade) Health(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
