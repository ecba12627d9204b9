package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

type userDocument struct {
	ID                  bson.ObjectID      `bson:"_id"`
	WithdrawableBalance float64            `bson:"withdrawableBalance"`
	TotalWithdrawn      float64            `bson:"totalWithdrawn"`
	PendingWithdrawals  int                `bson:"pendingWithdrawals"`
	AffiliateEarnings   float64            `bson:"affiliateEarnings"`
	HighestPackage      *model.PackageType `bson:"highestPackage"`
	HasEditedProfile    *bool              `bson:"hasEditedProfile"`
	ProfileEditDate     *time.Time         `bson:"profileEditDate"`
	EnrolledCourses     []bson.ObjectID    `bson:"enrolledCourses"`
}

// decodeUser keeps the difference between absent and null profile fields.
func decodeUser(raw bson.Raw) (model.User, error) {
	var doc userDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return model.User{}, err
	}

	u := model.User{
		ID:                  doc.ID,
		WithdrawableBalance: doc.WithdrawableBalance,
		TotalWithdrawn:      doc.TotalWithdrawn,
		PendingWithdrawals:  doc.PendingWithdrawals,
		AffiliateEarnings:   doc.AffiliateEarnings,
		HighestPackage:      doc.HighestPackage,
		EnrolledCourses:     doc.EnrolledCourses,
	}
	if _, err := raw.LookupErr(model.UserFieldHasEditedProfile); err == nil {
		u.HasEditedProfile = model.Some(doc.HasEditedProfile != nil && *doc.HasEditedProfile)
	}
	if _, err := raw.LookupErr(model.UserFieldProfileEditDate); err == nil {
		u.ProfileEditDate = model.Some(doc.ProfileEditDate)
	}
	return u, nil
}

func absent(field string) bson.E {
	return bson.E{Key: field, Value: bson.D{{Key: "$exists", Value: false}}}
}

func present(field string) bson.E {
	return bson.E{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}
}

func (r *userRepository) SetProfileEditDefaults(ctx context.Context) (int64, error) {
	filter := bson.D{
		absent(model.UserFieldHasEditedProfile),
		absent(model.UserFieldProfileEditDate),
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: model.UserFieldHasEditedProfile, Value: false},
		{Key: model.UserFieldProfileEditDate, Value: nil},
	}}}
	res, err := r.storage.collection(model.UsersCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("set profile edit defaults: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *userRepository) UnsetProfileEditFields(ctx context.Context) (int64, error) {
	update := bson.D{{Key: "$unset", Value: bson.D{
		{Key: model.UserFieldHasEditedProfile, Value: ""},
		{Key: model.UserFieldProfileEditDate, Value: ""},
	}}}
	res, err := r.storage.collection(model.UsersCollection).UpdateMany(ctx, bson.D{}, update)
	if err != nil {
		return 0, fmt.Errorf("unset profile edit fields: %w", err)
	}
	return res.ModifiedCount, nil
}

// decodeEnrolledUser keeps the _id of a document that fails to decode so the
// caller can report it.
func decodeEnrolledUser(raw bson.Raw) (model.User, error) {
	u, err := decodeUser(raw)
	if err == nil {
		return u, nil
	}
	idValue := raw.Lookup("_id")
	if id, ok := idValue.ObjectIDOK(); ok {
		return model.User{ID: id}, fmt.Errorf("decode user %s: %w", id.Hex(), err)
	}
	return model.User{}, fmt.Errorf("decode user %s: %w", idValue.String(), err)
}

func (r *userRepository) ForEachEnrolled(ctx context.Context, fn func(model.User, error) error) error {
	filter := bson.D{present(model.UserFieldEnrolledCourses + ".0")}
	opts := options.Find().
		SetProjection(bson.D{
			{Key: model.UserFieldHighestPackage, Value: 1},
			{Key: model.UserFieldEnrolledCourses, Value: 1},
		}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.storage.collection(model.UsersCollection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find enrolled users: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		u, decodeErr := decodeEnrolledUser(cur.Current)
		if err := fn(u, decodeErr); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("iterate users: %w", err)
	}
	return nil
}

func (r *userRepository) SetHighestPackage(ctx context.Context, id bson.ObjectID, tier model.PackageType) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: model.UserFieldHighestPackage, Value: string(tier)}}}}
	if _, err := r.storage.collection(model.UsersCollection).UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("set highest package for %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *userRepository) UnsetHighestPackage(ctx context.Context) (int64, error) {
	filter := bson.D{present(model.UserFieldHighestPackage)}
	update := bson.D{{Key: "$unset", Value: bson.D{{Key: model.UserFieldHighestPackage, Value: ""}}}}
	res, err := r.storage.collection(model.UsersCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("unset highest package: %w", err)
	}
	return res.ModifiedCount, nil
}
