package handlers

import (
	"context"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
)

// OperatorFacade describes authentication capabilities required by handlers.
type OperatorFacade interface {
	Login(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// MigrationFacade exposes the migration runner via HTTP.
type MigrationFacade interface {
	Status(ctx context.Context) ([]model.MigrationStatus, error)
	Up(ctx context.Context, target string) ([]migration.Outcome, error)
	Down(ctx context.Context, steps int) ([]migration.Outcome, error)
}

// HealthFacade reports store reachability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	OperatorFacade
	MigrationFacade
	HealthFacade
}
