package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

// UserRepository describes user field backfills.
type UserRepository interface {
	SetProfileEditDefaults(ctx context.Context) (int64, error)
	UnsetProfileEditFields(ctx context.Context) (int64, error)
	// ForEachEnrolled streams users with at least one enrolled course. A
	// document that cannot be decoded reaches fn with only its ID set and a
	// non-nil decodeErr. An
	// error returned by fn stops the iteration and is returned.
	ForEachEnrolled(ctx context.Context, fn func(u model.User, decodeErr error) error) error
	SetHighestPackage(ctx context.Context, id bson.ObjectID, tier model.PackageType) error
	UnsetHighestPackage(ctx context.Context) (int64, error)
}
