package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UsersCollection holds learner and affiliate accounts.
const UsersCollection = "users"

// User field names as persisted.
const (
	UserFieldWithdrawableBalance = "withdrawableBalance"
	UserFieldTotalWithdrawn      = "totalWithdrawn"
	UserFieldPendingWithdrawals  = "pendingWithdrawals"
	UserFieldAffiliateEarnings   = "affiliateEarnings"
	UserFieldHighestPackage      = "highestPackage"
	UserFieldHasEditedProfile    = "hasEditedProfile"
	UserFieldProfileEditDate     = "profileEditDate"
	UserFieldEnrolledCourses     = "enrolledCourses"
)

// User is the subset of the user document touched by migrations.
type User struct {
	ID                  bson.ObjectID
	WithdrawableBalance float64
	TotalWithdrawn      float64
	PendingWithdrawals  int
	AffiliateEarnings   float64
	HighestPackage      *PackageType
	HasEditedProfile    Optional[bool]
	ProfileEditDate     Optional[*time.Time]
	EnrolledCourses     []bson.ObjectID
}

// LacksProfileEditFields reports whether both profile edit fields are absent.
// A document carrying only one of them does not qualify.
func (u User) LacksProfileEditFields() bool {
	return !u.HasEditedProfile.Present && !u.ProfileEditDate.Present
}
