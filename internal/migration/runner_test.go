package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	testhelpers "github.com/kitkatcodeskitty/lms-migrate/internal/test"
)

type runnerFixture struct {
	runner   *Runner
	history  *testhelpers.HistoryStoreStub
	locker   *testhelpers.LockerStub
	recorder *testhelpers.RecorderStub
	calls    *[]string
	ms       []*fakeMigration
}

func newRunnerFixture(t *testing.T, names ...string) *runnerFixture {
	t.Helper()
	calls := &[]string{}
	f := &runnerFixture{
		history:  testhelpers.NewHistoryStoreStub(),
		locker:   &testhelpers.LockerStub{},
		recorder: &testhelpers.RecorderStub{},
		calls:    calls,
	}
	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		m := &fakeMigration{name: name, calls: calls}
		f.ms = append(f.ms, m)
		migrations = append(migrations, m)
	}
	reg, err := NewRegistry(migrations...)
	require.NoError(t, err)
	f.runner = NewRunner(reg, f.history, f.locker, f.recorder, discardLogger())
	return f
}

func outcomeNames(outcomes []Outcome) []string {
	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		names = append(names, o.Name)
	}
	return names
}

func TestRunnerUpAppliesInOrder(t *testing.T) {
	f := newRunnerFixture(t, "002_b", "001_a", "003_c")
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.runner.now = func() time.Time { return clock }

	outcomes, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"001_a:up", "002_b:up", "003_c:up"}, *f.calls)
	assert.Equal(t, []string{"001_a", "002_b", "003_c"}, outcomeNames(outcomes))
	for _, o := range outcomes {
		assert.Equal(t, model.DirectionUp, o.Direction)
		assert.True(t, o.Result.Success)
	}

	require.Len(t, f.history.Records, 3)
	rec := f.history.Records["002_b"]
	assert.Equal(t, clock, rec.AppliedAt)
	assert.Equal(t, "ok modified=1", rec.Summary)
	assert.Equal(t, []string{"001_a:up", "002_b:up", "003_c:up"}, f.recorder.Names())

	acquired, released := f.locker.Counts()
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, released)
}

func TestRunnerUpSkipsApplied(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b")

	_, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)
	outcomes, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, outcomes)
	assert.Equal(t, []string{"001_a:up", "002_b:up"}, *f.calls)
}

func TestRunnerUpStopsAtTarget(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b", "003_c")

	outcomes, err := f.runner.Up(context.Background(), "002_b")
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a", "002_b"}, outcomeNames(outcomes))
	assert.NotContains(t, f.history.Records, "003_c")
}

func TestRunnerUpUnknownTarget(t *testing.T) {
	f := newRunnerFixture(t, "001_a")

	_, err := f.runner.Up(context.Background(), "009_missing")
	assert.ErrorIs(t, err, domainErrors.ErrUnknownMigration)
	assert.Empty(t, *f.calls)

	acquired, _ := f.locker.Counts()
	assert.Zero(t, acquired)
}

func TestRunnerUpStopsOnFailure(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b", "003_c")
	boom := errors.New("boom")
	f.ms[1].upErr = boom

	outcomes, err := f.runner.Up(context.Background(), "")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "migration 002_b up")

	assert.Equal(t, []string{"001_a"}, outcomeNames(outcomes))
	assert.Equal(t, []string{"001_a:up", "002_b:up"}, *f.calls)
	assert.Contains(t, f.history.Records, "001_a")
	assert.NotContains(t, f.history.Records, "002_b")

	require.Len(t, f.recorder.Observations, 2)
	assert.ErrorIs(t, f.recorder.Observations[1].Err, boom)

	_, released := f.locker.Counts()
	assert.Equal(t, 1, released)
}

func TestRunnerUpHistoryWriteFailure(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b")
	boom := errors.New("write failed")
	f.history.MarkAppliedErr = boom

	outcomes, err := f.runner.Up(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, outcomes)
	assert.Equal(t, []string{"001_a:up"}, *f.calls)
}

func TestRunnerLocked(t *testing.T) {
	f := newRunnerFixture(t, "001_a")
	f.locker.AcquireErr = domainErrors.ErrLocked

	_, err := f.runner.Up(context.Background(), "")
	assert.ErrorIs(t, err, domainErrors.ErrLocked)
	_, err = f.runner.Down(context.Background(), 1)
	assert.ErrorIs(t, err, domainErrors.ErrLocked)
	assert.Empty(t, *f.calls)
}

func TestRunnerReleaseFailureDoesNotFailRun(t *testing.T) {
	f := newRunnerFixture(t, "001_a")
	f.locker.ReleaseErr = errors.New("lock expired")

	outcomes, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, outcomes, 1)
}

func TestRunnerDownRevertsLastSteps(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b", "003_c")
	_, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)
	*f.calls = nil

	outcomes, err := f.runner.Down(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"003_c:down", "002_b:down"}, *f.calls)
	assert.Equal(t, []string{"003_c", "002_b"}, outcomeNames(outcomes))
	assert.Equal(t, []string{"003_c", "002_b"}, f.history.Reverted)
	assert.Contains(t, f.history.Records, "001_a")
	for _, o := range outcomes {
		assert.Equal(t, model.DirectionDown, o.Direction)
	}
}

func TestRunnerDownDefaultsToOneStep(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b")
	_, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)
	*f.calls = nil

	_, err = f.runner.Down(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"002_b:down"}, *f.calls)
}

func TestRunnerDownSkipsPendingAndUnregistered(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b", "003_c")
	f.history.Records["001_a"] = model.MigrationRecord{Name: "001_a"}
	f.history.Records["000_legacy"] = model.MigrationRecord{Name: "000_legacy"}

	outcomes, err := f.runner.Down(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"001_a"}, outcomeNames(outcomes))
	assert.Equal(t, []string{"001_a:down"}, *f.calls)
	assert.Contains(t, f.history.Records, "000_legacy")
}

func TestRunnerDownStopsOnFailure(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b")
	_, err := f.runner.Up(context.Background(), "")
	require.NoError(t, err)
	boom := errors.New("boom")
	f.ms[1].downErr = boom

	outcomes, err := f.runner.Down(context.Background(), 2)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, outcomes)
	assert.Contains(t, f.history.Records, "002_b")
}

func TestRunnerStatus(t *testing.T) {
	f := newRunnerFixture(t, "001_a", "002_b")
	appliedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f.history.Records["001_a"] = model.MigrationRecord{Name: "001_a", AppliedAt: appliedAt}

	statuses, err := f.runner.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, "001_a", statuses[0].Name)
	assert.True(t, statuses[0].Applied)
	require.NotNil(t, statuses[0].AppliedAt)
	assert.Equal(t, appliedAt, *statuses[0].AppliedAt)

	assert.Equal(t, "002_b", statuses[1].Name)
	assert.False(t, statuses[1].Applied)
	assert.Nil(t, statuses[1].AppliedAt)

	boom := errors.New("unreachable")
	f.history.AppliedErr = boom
	_, err = f.runner.Status(context.Background())
	assert.ErrorIs(t, err, boom)
}
