package repository

import (
	"context"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

// IndexRepository manages index metadata of a collection.
//
// CreateIndex returns errors.ErrIndexConflict when an index with an
// equivalent key pattern already exists under another name. DropIndex
// returns errors.ErrIndexNotFound when there is nothing to drop.
type IndexRepository interface {
	CreateIndex(ctx context.Context, collection string, spec model.IndexSpec) (string, error)
	ListIndexes(ctx context.Context, collection string) ([]string, error)
	DropIndex(ctx context.Context, collection, name string) error
}
