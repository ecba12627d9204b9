package repository

import (
	"context"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

// HistoryRepository persists which migrations are applied.
type HistoryRepository interface {
	Applied(ctx context.Context) ([]model.MigrationRecord, error)
	MarkApplied(ctx context.Context, record model.MigrationRecord) error
	MarkReverted(ctx context.Context, name string) error
}
