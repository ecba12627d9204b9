package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	testhelpers "github.com/kitkatcodeskitty/lms-migrate/internal/test"
)

func intPtr(v int) *int { return &v }

func TestPackageTypesUp(t *testing.T) {
	store := &testhelpers.CourseStoreStub{}
	premium := store.Add(model.PackagePremium)
	elite := store.Add(model.PackageElite)
	supreme := store.Add(model.PackageSupreme)
	prime := store.Add(model.PackagePrime)
	unknown := store.Add("platinum")

	res, err := NewPackageTypes(store, discardLogger()).Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Counts["modified"])

	cases := []struct {
		id    bson.ObjectID
		tag   model.PackageType
		limit *int
	}{
		{premium, model.PackageElite, intPtr(1)},
		{elite, model.PackageCreator, intPtr(3)},
		{supreme, model.PackageMaster, intPtr(6)},
		{prime, model.PackagePrime, nil},
		{unknown, "platinum", nil},
	}
	for _, tc := range cases {
		c := store.Get(tc.id)
		require.NotNil(t, c)
		assert.Equal(t, tc.tag, c.PackageType)
		assert.Equal(t, tc.limit, c.CourseLimit, "course limit of %s", tc.tag)
	}
}

func TestPackageTypesDownRestoresTagsAndDropsLimit(t *testing.T) {
	ctx := context.Background()
	store := &testhelpers.CourseStoreStub{}
	premium := store.Add(model.PackagePremium)
	elite := store.Add(model.PackageElite)
	supreme := store.Add(model.PackageSupreme)
	m := NewPackageTypes(store, discardLogger())

	_, err := m.Up(ctx)
	require.NoError(t, err)

	res, err := m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Counts["modified"])

	assert.Equal(t, model.PackagePremium, store.Get(premium).PackageType)
	assert.Equal(t, model.PackageElite, store.Get(elite).PackageType)
	assert.Equal(t, model.PackageSupreme, store.Get(supreme).PackageType)
	for _, c := range store.Courses {
		assert.Nil(t, c.CourseLimit)
	}
}

func TestPackageTypesDownInvertsNativeTags(t *testing.T) {
	store := &testhelpers.CourseStoreStub{}
	native := store.Add(model.PackageCreator)
	prime := store.Add(model.PackagePrime)

	_, err := NewPackageTypes(store, discardLogger()).Down(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.PackageElite, store.Get(native).PackageType)
	assert.Equal(t, model.PackagePrime, store.Get(prime).PackageType)
}

func TestPackageTypesPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("write concern error")
	store := &testhelpers.CourseStoreStub{
		RemapFn:  func(context.Context, model.PackageRemap) (int64, error) { return 0, boom },
		RevertFn: func(context.Context, model.PackageRemap) (int64, error) { return 0, boom },
	}
	m := NewPackageTypes(store, discardLogger())

	_, err := m.Up(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = m.Down(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLegacyPackageRemap(t *testing.T) {
	assert.Equal(t, []model.PackageType{model.PackagePremium, model.PackageElite, model.PackageSupreme}, legacyPackageRemap.Sources())
	for _, rule := range legacyPackageRemap {
		assert.Positive(t, rule.To.Rank(), "target %s must be a ranked tier", rule.To)
	}
}
