package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

// CourseRepository describes course rewrites used by migrations.
type CourseRepository interface {
	// RemapPackageTypes rewrites packageType and courseLimit of every course
	// whose tag is a source of remap, in one conditional update per document.
	RemapPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error)
	// RevertPackageTypes applies remap to packageType and removes courseLimit.
	RevertPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error)
	// PackageTypes returns the packageType of each course found, in fetch order.
	PackageTypes(ctx context.Context, ids []bson.ObjectID) ([]model.PackageType, error)
}
