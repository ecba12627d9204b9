package test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// ErrIndexKeySpecsConflict mirrors the store refusing an existing name with another key pattern.
var ErrIndexKeySpecsConflict = errors.New("index with the same name but different keys exists")

type storedIndex struct {
	name string
	spec model.IndexSpec
}

// IndexStoreStub keeps index metadata in memory and follows the store's
// de-duplication rules: an identical name and pattern is a no-op, an
// identical pattern under another name is ErrIndexConflict, and the
// primary index always exists.
type IndexStoreStub struct {
	CreateFn func(context.Context, string, model.IndexSpec) (string, error)
	ListFn   func(context.Context, string) ([]string, error)
	DropFn   func(context.Context, string, string) error

	Created []string
	Dropped []string

	indexes map[string][]storedIndex
}

// NewIndexStoreStub constructs an empty store.
func NewIndexStoreStub() *IndexStoreStub {
	return &IndexStoreStub{indexes: make(map[string][]storedIndex)}
}

// Seed registers an index that exists before the test runs.
func (s *IndexStoreStub) Seed(collection, name string, spec model.IndexSpec) {
	if s.indexes == nil {
		s.indexes = make(map[string][]storedIndex)
	}
	s.indexes[collection] = append(s.indexes[collection], storedIndex{name: name, spec: spec})
}

// CreateIndex stores spec under its default name.
func (s *IndexStoreStub) CreateIndex(ctx context.Context, collection string, spec model.IndexSpec) (string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, collection, spec)
	}
	if s.indexes == nil {
		s.indexes = make(map[string][]storedIndex)
	}
	name := spec.Name()
	for _, idx := range s.indexes[collection] {
		switch {
		case idx.name == name && idx.spec.Equal(spec):
			return name, nil
		case idx.name == name:
			return "", ErrIndexKeySpecsConflict
		case idx.spec.Equal(spec):
			return "", domainErrors.ErrIndexConflict
		}
	}
	s.indexes[collection] = append(s.indexes[collection], storedIndex{name: name, spec: spec})
	s.Created = append(s.Created, collection+"."+name)
	return name, nil
}

// ListIndexes returns the primary index followed by stored names.
func (s *IndexStoreStub) ListIndexes(ctx context.Context, collection string) ([]string, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, collection)
	}
	names := []string{model.PrimaryIndexName}
	for _, idx := range s.indexes[collection] {
		names = append(names, idx.name)
	}
	return names, nil
}

// DropIndex removes name or returns ErrIndexNotFound.
func (s *IndexStoreStub) DropIndex(ctx context.Context, collection, name string) error {
	if s.DropFn != nil {
		return s.DropFn(ctx, collection, name)
	}
	if name == model.PrimaryIndexName {
		return errors.New("cannot drop _id index")
	}
	list := s.indexes[collection]
	for i, idx := range list {
		if idx.name == name {
			s.indexes[collection] = append(list[:i:i], list[i+1:]...)
			s.Dropped = append(s.Dropped, collection+"."+name)
			return nil
		}
	}
	return domainErrors.ErrIndexNotFound
}

// CourseStoreStub keeps courses in insertion order.
type CourseStoreStub struct {
	RemapFn        func(context.Context, model.PackageRemap) (int64, error)
	RevertFn       func(context.Context, model.PackageRemap) (int64, error)
	PackageTypesFn func(context.Context, []bson.ObjectID) ([]model.PackageType, error)

	Courses []*model.Course
}

// Add stores a course with a fresh identifier and returns it.
func (s *CourseStoreStub) Add(tag model.PackageType) bson.ObjectID {
	id := bson.NewObjectID()
	s.Courses = append(s.Courses, &model.Course{ID: id, PackageType: tag})
	return id
}

// Get returns the course with id or nil.
func (s *CourseStoreStub) Get(id bson.ObjectID) *model.Course {
	for _, c := range s.Courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemapPackageTypes rewrites tag and limit from the pre-image of each course.
func (s *CourseStoreStub) RemapPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error) {
	if s.RemapFn != nil {
		return s.RemapFn(ctx, remap)
	}
	var modified int64
	for _, c := range s.Courses {
		rule, ok := remap.Lookup(c.PackageType)
		if !ok {
			continue
		}
		limit := rule.CourseLimit
		c.PackageType = rule.To
		c.CourseLimit = &limit
		modified++
	}
	return modified, nil
}

// RevertPackageTypes rewrites tags and drops courseLimit on matched courses.
func (s *CourseStoreStub) RevertPackageTypes(ctx context.Context, remap model.PackageRemap) (int64, error) {
	if s.RevertFn != nil {
		return s.RevertFn(ctx, remap)
	}
	var modified int64
	for _, c := range s.Courses {
		rule, ok := remap.Lookup(c.PackageType)
		if !ok {
			continue
		}
		c.PackageType = rule.To
		c.CourseLimit = nil
		modified++
	}
	return modified, nil
}

// PackageTypes returns tags of found courses in store order.
func (s *CourseStoreStub) PackageTypes(ctx context.Context, ids []bson.ObjectID) ([]model.PackageType, error) {
	if s.PackageTypesFn != nil {
		return s.PackageTypesFn(ctx, ids)
	}
	wanted := make(map[bson.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var types []model.PackageType
	for _, c := range s.Courses {
		if _, ok := wanted[c.ID]; ok {
			types = append(types, c.PackageType)
		}
	}
	return types, nil
}

// UserStoreStub keeps users in insertion order and honours field presence.
type UserStoreStub struct {
	SetDefaultsFn  func(context.Context) (int64, error)
	UnsetFieldsFn  func(context.Context) (int64, error)
	ForEachFn      func(context.Context, func(model.User, error) error) error
	SetHighestFn   func(context.Context, bson.ObjectID, model.PackageType) error
	UnsetHighestFn func(context.Context) (int64, error)

	Users      []*model.User
	HighestSet []bson.ObjectID
	// Malformed maps a user ID to the decode error reported for it.
	Malformed map[bson.ObjectID]error
}

// Add stores a user enrolled in courses and returns it.
func (s *UserStoreStub) Add(courses ...bson.ObjectID) *model.User {
	u := &model.User{ID: bson.NewObjectID(), EnrolledCourses: courses}
	s.Users = append(s.Users, u)
	return u
}

// SetProfileEditDefaults only touches users lacking both fields.
func (s *UserStoreStub) SetProfileEditDefaults(ctx context.Context) (int64, error) {
	if s.SetDefaultsFn != nil {
		return s.SetDefaultsFn(ctx)
	}
	var modified int64
	for _, u := range s.Users {
		if !u.LacksProfileEditFields() {
			continue
		}
		u.HasEditedProfile = model.Some(false)
		u.ProfileEditDate = model.Some[*time.Time](nil)
		modified++
	}
	return modified, nil
}

// UnsetProfileEditFields removes both fields wherever either is present.
func (s *UserStoreStub) UnsetProfileEditFields(ctx context.Context) (int64, error) {
	if s.UnsetFieldsFn != nil {
		return s.UnsetFieldsFn(ctx)
	}
	var modified int64
	for _, u := range s.Users {
		if !u.HasEditedProfile.Present && !u.ProfileEditDate.Present {
			continue
		}
		u.HasEditedProfile = model.None[bool]()
		u.ProfileEditDate = model.None[*time.Time]()
		modified++
	}
	return modified, nil
}

// ForEachEnrolled yields copies of users with at least one course. Users
// listed in Malformed are yielded with their decode error instead.
func (s *UserStoreStub) ForEachEnrolled(ctx context.Context, fn func(model.User, error) error) error {
	if s.ForEachFn != nil {
		return s.ForEachFn(ctx, fn)
	}
	for _, u := range s.Users {
		if len(u.EnrolledCourses) == 0 {
			continue
		}
		if decodeErr, ok := s.Malformed[u.ID]; ok {
			if err := fn(model.User{ID: u.ID}, decodeErr); err != nil {
				return err
			}
			continue
		}
		if err := fn(*u, nil); err != nil {
			return err
		}
	}
	return nil
}

// SetHighestPackage stores tier on the user with id.
func (s *UserStoreStub) SetHighestPackage(ctx context.Context, id bson.ObjectID, tier model.PackageType) error {
	if s.SetHighestFn != nil {
		return s.SetHighestFn(ctx, id, tier)
	}
	for _, u := range s.Users {
		if u.ID == id {
			t := tier
			u.HighestPackage = &t
			s.HighestSet = append(s.HighestSet, id)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UnsetHighestPackage clears the field where present.
func (s *UserStoreStub) UnsetHighestPackage(ctx context.Context) (int64, error) {
	if s.UnsetHighestFn != nil {
		return s.UnsetHighestFn(ctx)
	}
	var modified int64
	for _, u := range s.Users {
		if u.HighestPackage != nil {
			u.HighestPackage = nil
			modified++
		}
	}
	return modified, nil
}

// HistoryStoreStub records applied migrations in memory.
type HistoryStoreStub struct {
	AppliedErr      error
	MarkAppliedErr  error
	MarkRevertedErr error

	Records  map[string]model.MigrationRecord
	Reverted []string
}

// NewHistoryStoreStub constructs an empty history.
func NewHistoryStoreStub(records ...model.MigrationRecord) *HistoryStoreStub {
	s := &HistoryStoreStub{Records: make(map[string]model.MigrationRecord)}
	for _, rec := range records {
		s.Records[rec.Name] = rec
	}
	return s
}

// Applied returns records sorted by name.
func (s *HistoryStoreStub) Applied(ctx context.Context) ([]model.MigrationRecord, error) {
	if s.AppliedErr != nil {
		return nil, s.AppliedErr
	}
	out := make([]model.MigrationRecord, 0, len(s.Records))
	for _, rec := range s.Records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MarkApplied upserts rec.
func (s *HistoryStoreStub) MarkApplied(ctx context.Context, rec model.MigrationRecord) error {
	if s.MarkAppliedErr != nil {
		return s.MarkAppliedErr
	}
	if s.Records == nil {
		s.Records = make(map[string]model.MigrationRecord)
	}
	s.Records[rec.Name] = rec
	return nil
}

// MarkReverted deletes the record of name.
func (s *HistoryStoreStub) MarkReverted(ctx context.Context, name string) error {
	if s.MarkRevertedErr != nil {
		return s.MarkRevertedErr
	}
	delete(s.Records, name)
	s.Reverted = append(s.Reverted, name)
	return nil
}

// LockerStub counts acquisitions and releases.
type LockerStub struct {
	AcquireErr error
	ReleaseErr error

	mu       sync.Mutex
	acquired int
	released int
}

// Acquire returns AcquireErr or a release func.
func (s *LockerStub) Acquire(ctx context.Context) (func(context.Context) error, error) {
	if s.AcquireErr != nil {
		return nil, s.AcquireErr
	}
	s.mu.Lock()
	s.acquired++
	s.mu.Unlock()
	return func(context.Context) error {
		s.mu.Lock()
		s.released++
		s.mu.Unlock()
		return s.ReleaseErr
	}, nil
}

// Counts returns how many times the lock was acquired and released.
func (s *LockerStub) Counts() (acquired, released int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired, s.released
}

// StorageStub aggregates repository stubs.
type StorageStub struct {
	IndexStore   *IndexStoreStub
	CourseStore  *CourseStoreStub
	UserStore    *UserStoreStub
	HistoryStore *HistoryStoreStub
}

// NewStorageStub constructs StorageStub with empty stores.
func NewStorageStub() *StorageStub {
	return &StorageStub{
		IndexStore:   NewIndexStoreStub(),
		CourseStore:  &CourseStoreStub{},
		UserStore:    &UserStoreStub{},
		HistoryStore: NewHistoryStoreStub(),
	}
}

func (s *StorageStub) Indexes() repository.IndexRepository { return s.IndexStore }

func (s *StorageStub) Courses() repository.CourseRepository { return s.CourseStore }

func (s *StorageStub) Users() repository.UserRepository { return s.UserStore }

func (s *StorageStub) History() repository.HistoryRepository { return s.HistoryStore }

var (
	_ repository.IndexRepository   = (*IndexStoreStub)(nil)
	_ repository.CourseRepository  = (*CourseStoreStub)(nil)
	_ repository.UserRepository    = (*UserStoreStub)(nil)
	_ repository.HistoryRepository = (*HistoryStoreStub)(nil)
	_ repository.Locker            = (*LockerStub)(nil)
	_ repository.Factory           = (*StorageStub)(nil)
)
