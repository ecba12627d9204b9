package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

const packageTypePath = "$" + model.CourseFieldPackageType

// switchOn builds a $switch over the current packageType. Unmatched documents
// keep fallback.
func switchOn(remap model.PackageRemap, then func(model.PackageRemapRule) any, fallback any) bson.D {
	branches := make(bson.A, 0, len(remap))
	for _, rule := range remap {
		branches = append(branches, bson.D{
			{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{packageTypePath, string(rule.From)}}}},
			{Key: "then", Value: then(rule)},
		})
	}
	return bson.D{{Key: "$switch", Value: bson.D{
		{Key: "branches", Value: branches},
		{Key: "default", Value: fallback},
	}}}
}

func sourceFilter(remap model.PackageRemap) bson.D {
	sources := make(bson.A, 0, len(remap))
	for _, tag := range remap.Sources() {
		sources = append(sources, string(tag))
	}
	return bson.D{{Key: model.CourseFieldPackageType, Value: bson.D{{Key: "$in", Value: sources}}}}
}

// remapPipeline sets tag and limit in a single $set stage so both read the
// same pre-image of the document.
func remapPipeline(remap model.PackageRemap) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: model.CourseFieldPackageType, Value: switchOn(remap, func(r model.PackageRemapRule) any {
				return string(r.To)
			}, packageTypePath)},
			{Key: model.CourseFieldCourseLimit, Value: switchOn(remap, func(r model.PackageRemapRule) any {
				return int32(r.CourseLimit)
			}, "$"+model.CourseFieldCourseLimit)},
		}}},
	}
}

func revertPipeline(remap model.PackageRemap) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: model.CourseFieldPackageType, Value: switchOn(remap, func(r model.PackageRemapRule) any {
				return string(r.To)
			}, packageTypePath)},
		}}},
		{{Key: "$unset", Value: model.CourseFieldCourseLimit}},
	}
}

func (r *courseRepository) RemapPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error) {
	res, err := r.storage.collection(model.CoursesCollection).UpdateMany(ctx, sourceFilter(remap), remapPipeline(remap))
	if err != nil {
		return 0, fmt.Errorf("remap package types: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *courseRepository) RevertPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error) {
	res, err := r.storage.collection(model.CoursesCollection).UpdateMany(ctx, sourceFilter(remap), revertPipeline(remap))
	if err != nil {
		return 0, fmt.Errorf("revert package types: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *courseRepository) PackageTypes(ctx context.Context, ids []bson.ObjectID) ([]model.PackageType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	opts := options.Find().SetProjection(bson.D{{Key: model.CourseFieldPackageType, Value: 1}})

	cur, err := r.storage.collection(model.CoursesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	var courses []model.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	types := make([]model.PackageType, 0, len(courses))
	for _, c := range courses {
		types = append(types, c.PackageType)
	}
	return types, nil
}
