package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
)

type migrationsStub struct {
	upFn     func(context.Context, string) ([]migration.Outcome, error)
	downFn   func(context.Context, int) ([]migration.Outcome, error)
	statusFn func(context.Context) ([]model.MigrationStatus, error)

	upTargets   []string
	downSteps   []int
	statusCalls int
}

func (s *migrationsStub) Up(ctx context.Context, target string) ([]migration.Outcome, error) {
	s.upTargets = append(s.upTargets, target)
	if s.upFn != nil {
		return s.upFn(ctx, target)
	}
	return nil, nil
}

func (s *migrationsStub) Down(ctx context.Context, steps int) ([]migration.Outcome, error) {
	s.downSteps = append(s.downSteps, steps)
	if s.downFn != nil {
		return s.downFn(ctx, steps)
	}
	return nil, nil
}

func (s *migrationsStub) Status(ctx context.Context) ([]model.MigrationStatus, error) {
	s.statusCalls++
	if s.statusFn != nil {
		return s.statusFn(ctx)
	}
	return nil, nil
}

type pusherStub struct {
	err   error
	calls int
}

func (p *pusherStub) Push(context.Context) error {
	p.calls++
	return p.err
}

func newTestCommandConfig(command string) *config.Config {
	return &config.Config{
		Command:          command,
		Target:           "002_package_types",
		Steps:            2,
		MigrationTimeout: time.Second,
		ShutdownTimeout:  time.Second,
	}
}

func TestCommandRunnerUp(t *testing.T) {
	migrations := &migrationsStub{
		upFn: func(ctx context.Context, target string) ([]migration.Outcome, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatal("expected command deadline")
			}
			return []migration.Outcome{{Name: "001_withdrawal_indexes", Direction: model.DirectionUp, Result: migration.Result{Success: true}}}, nil
		},
	}
	pusher := &pusherStub{}
	runner := NewCommandRunner(newTestCommandConfig(config.CommandUp), migrations, pusher, discardLogger())

	if code := runner.Run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if len(migrations.upTargets) != 1 || migrations.upTargets[0] != "002_package_types" {
		t.Fatalf("unexpected up targets: %v", migrations.upTargets)
	}
	if pusher.calls != 1 {
		t.Fatalf("expected metrics push, got %d", pusher.calls)
	}
}

func TestCommandRunnerDown(t *testing.T) {
	migrations := &migrationsStub{}
	runner := NewCommandRunner(newTestCommandConfig(config.CommandDown), migrations, &pusherStub{}, discardLogger())

	if code := runner.Run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if len(migrations.downSteps) != 1 || migrations.downSteps[0] != 2 {
		t.Fatalf("unexpected down steps: %v", migrations.downSteps)
	}
}

func TestCommandRunnerStatus(t *testing.T) {
	appliedAt := time.Unix(1_700_000_000, 0)
	migrations := &migrationsStub{
		statusFn: func(context.Context) ([]model.MigrationStatus, error) {
			return []model.MigrationStatus{
				{Name: "001_withdrawal_indexes", Applied: true, AppliedAt: &appliedAt},
				{Name: "002_package_types"},
			}, nil
		},
	}
	runner := NewCommandRunner(newTestCommandConfig(config.CommandStatus), migrations, &pusherStub{}, discardLogger())

	if code := runner.Run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestCommandRunnerFailureExitsNonZero(t *testing.T) {
	migrations := &migrationsStub{
		upFn: func(context.Context, string) ([]migration.Outcome, error) {
			return nil, errors.New("boom")
		},
	}
	pusher := &pusherStub{}
	runner := NewCommandRunner(newTestCommandConfig(config.CommandUp), migrations, pusher, discardLogger())

	if code := runner.Run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if pusher.calls != 1 {
		t.Fatalf("expected metrics push after failure, got %d", pusher.calls)
	}
}

func TestCommandRunnerPushFailureIsNotFatal(t *testing.T) {
	runner := NewCommandRunner(newTestCommandConfig(config.CommandStatus), &migrationsStub{}, &pusherStub{err: errors.New("gateway down")}, discardLogger())

	if code := runner.Run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestCommandRunnerRejectsServe(t *testing.T) {
	runner := NewCommandRunner(newTestCommandConfig(config.CommandServe), &migrationsStub{}, &pusherStub{}, discardLogger())

	if code := runner.Run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
