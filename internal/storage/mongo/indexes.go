package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

func indexKeys(spec model.IndexSpec) bson.D {
	keys := make(bson.D, 0, len(spec.Keys))
	for _, k := range spec.Keys {
		keys = append(keys, bson.E{Key: k.Field, Value: int32(k.Direction)})
	}
	return keys
}

func (r *indexRepository) CreateIndex(ctx context.Context, collection string, spec model.IndexSpec) (string, error) {
	name, err := r.storage.collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    indexKeys(spec),
		Options: options.Index().SetName(spec.Name()),
	})
	if err != nil {
		if isIndexConflict(err) {
			return "", fmt.Errorf("%s.%s: %w", collection, spec.Name(), domainErrors.ErrIndexConflict)
		}
		return "", fmt.Errorf("create index %s.%s: %w", collection, spec.Name(), err)
	}
	return name, nil
}

func (r *indexRepository) ListIndexes(ctx context.Context, collection string) ([]string, error) {
	specs, err := r.storage.collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		if isNamespaceNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list indexes %s: %w", collection, err)
	}
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	return names, nil
}

func (r *indexRepository) DropIndex(ctx context.Context, collection, name string) error {
	if err := r.storage.collection(collection).Indexes().DropOne(ctx, name); err != nil {
		if isIndexNotFound(err) {
			return fmt.Errorf("%s.%s: %w", collection, name, domainErrors.ErrIndexNotFound)
		}
		return fmt.Errorf("drop index %s.%s: %w", collection, name, err)
	}
	return nil
}
