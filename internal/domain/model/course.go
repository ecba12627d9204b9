package model

import "go.mongodb.org/mongo-driver/v2/bson"

// CoursesCollection holds purchasable courses.
const CoursesCollection = "courses"

const (
	CourseFieldPackageType = "packageType"
	CourseFieldCourseLimit = "courseLimit"
)

// Course is a course document. CourseLimit is nil when the field is absent.
type Course struct {
	ID          bson.ObjectID `bson:"_id"`
	PackageType PackageType   `bson:"packageType"`
	CourseLimit *int          `bson:"courseLimit,omitempty"`
}
