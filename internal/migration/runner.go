package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// Recorder observes executed transitions.
type Recorder interface {
	ObserveMigration(name string, direction model.Direction, took time.Duration, err error)
}

// Outcome describes one executed transition.
type Outcome struct {
	Name      string
	Direction model.Direction
	Result    Result
	Duration  time.Duration
}

// Runner applies and reverts registered migrations one at a time.
type Runner struct {
	registry *Registry
	history  repository.HistoryRepository
	locker   repository.Locker
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner constructs Runner.
func NewRunner(registry *Registry, history repository.HistoryRepository, locker repository.Locker, recorder Recorder, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		history:  history,
		locker:   locker,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Up applies pending migrations in ascending order, stopping after target
// when it is set. Applied migrations are skipped. On failure the outcomes
// completed so far are returned with the error.
func (r *Runner) Up(ctx context.Context, target string) ([]Outcome, error) {
	pending, err := r.registry.Until(target)
	if err != nil {
		return nil, err
	}

	release, err := r.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(ctx, release)

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	var outcomes []Outcome
	for _, m := range pending {
		if _, ok := applied[m.Name()]; ok {
			r.logger.Debug("migration already applied", slog.String("migration", m.Name()))
			continue
		}

		out, err := r.run(ctx, m, model.DirectionUp)
		if err != nil {
			return outcomes, err
		}

		record := model.MigrationRecord{
			Name:      m.Name(),
			AppliedAt: r.now(),
			Duration:  out.Duration,
			Summary:   out.Result.String(),
		}
		if err := r.history.MarkApplied(ctx, record); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}

	r.logger.Info("migrations up to date", slog.Int("applied", len(outcomes)))
	return outcomes, nil
}

// Down reverts the last steps applied migrations in descending order.
func (r *Runner) Down(ctx context.Context, steps int) ([]Outcome, error) {
	if steps <= 0 {
		steps = 1
	}

	release, err := r.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(ctx, release)

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}
	for name := range applied {
		if _, ok := r.registry.Lookup(name); !ok {
			r.logger.Warn("applied migration is not registered", slog.String("migration", name))
		}
	}

	all := r.registry.All()
	var outcomes []Outcome
	for i := len(all) - 1; i >= 0 && len(outcomes) < steps; i-- {
		m := all[i]
		if _, ok := applied[m.Name()]; !ok {
			continue
		}

		out, err := r.run(ctx, m, model.DirectionDown)
		if err != nil {
			return outcomes, err
		}
		if err := r.history.MarkReverted(ctx, m.Name()); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}

	r.logger.Info("migrations reverted", slog.Int("reverted", len(outcomes)))
	return outcomes, nil
}

// Status lists registered migrations with their applied state.
func (r *Runner) Status(ctx context.Context) ([]model.MigrationStatus, error) {
	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	all := r.registry.All()
	statuses := make([]model.MigrationStatus, 0, len(all))
	for _, m := range all {
		st := model.MigrationStatus{Name: m.Name()}
		if rec, ok := applied[m.Name()]; ok {
			appliedAt := rec.AppliedAt
			st.Applied = true
			st.AppliedAt = &appliedAt
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (r *Runner) run(ctx context.Context, m Migration, direction model.Direction) (Outcome, error) {
	r.logger.Info("running migration", slog.String("migration", m.Name()), slog.String("direction", string(direction)))

	start := r.now()
	var (
		res Result
		err error
	)
	if direction == model.DirectionUp {
		res, err = m.Up(ctx)
	} else {
		res, err = m.Down(ctx)
	}
	took := r.now().Sub(start)
	r.recorder.ObserveMigration(m.Name(), direction, took, err)

	if err != nil {
		r.logger.Error("migration failed",
			slog.String("migration", m.Name()),
			slog.String("direction", string(direction)),
			slog.String("error", err.Error()),
		)
		return Outcome{}, fmt.Errorf("migration %s %s: %w", m.Name(), direction, err)
	}

	r.logger.Info("migration finished",
		slog.String("migration", m.Name()),
		slog.String("direction", string(direction)),
		slog.Duration("took", took),
		slog.String("summary", res.String()),
	)
	return Outcome{Name: m.Name(), Direction: direction, Result: res, Duration: took}, nil
}

func (r *Runner) appliedSet(ctx context.Context) (map[string]model.MigrationRecord, error) {
	records, err := r.history.Applied(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]model.MigrationRecord, len(records))
	for _, rec := range records {
		set[rec.Name] = rec
	}
	return set, nil
}

func (r *Runner) release(ctx context.Context, release func(context.Context) error) {
	if err := release(context.WithoutCancel(ctx)); err != nil {
		r.logger.Warn("release runner lock failed", slog.String("error", err.Error()))
	}
}
