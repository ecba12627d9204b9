package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// HighestPackageName identifies the highest package backfill.
const HighestPackageName = "004_highest_package"

// HighestPackage derives users.highestPackage from enrolled courses.
type HighestPackage struct {
	users   repository.UserRepository
	courses repository.CourseRepository
	logger  *slog.Logger
}

// NewHighestPackage constructs HighestPackage.
func NewHighestPackage(users repository.UserRepository, courses repository.CourseRepository, logger *slog.Logger) *HighestPackage {
	return &HighestPackage{users: users, courses: courses, logger: logger}
}

func (m *HighestPackage) Name() string { return HighestPackageName }

// Up computes the highest tier of every enrolled user. Failures on a single
// user, a malformed document included, are logged and counted; only a
// failure of the iteration itself aborts.
func (m *HighestPackage) Up(ctx context.Context) (Result, error) {
	var processed, updated, skipped, failed int64

	err := m.users.ForEachEnrolled(ctx, func(u model.User, decodeErr error) error {
		processed++

		if decodeErr != nil {
			failed++
			m.logger.Warn("skip malformed user",
				slog.String("user", u.ID.Hex()),
				slog.String("error", decodeErr.Error()),
			)
			return nil
		}

		types, err := m.courses.PackageTypes(ctx, u.EnrolledCourses)
		if err != nil {
			failed++
			m.logger.Warn("fetch enrolled course tiers failed",
				slog.String("user", u.ID.Hex()),
				slog.String("error", err.Error()),
			)
			return nil
		}

		tier, ok := model.HighestPackage(types)
		if !ok {
			skipped++
			m.logger.Debug("no ranked tier among enrolled courses", slog.String("user", u.ID.Hex()))
			return nil
		}
		if u.HighestPackage != nil && *u.HighestPackage == tier {
			skipped++
			return nil
		}

		if err := m.users.SetHighestPackage(ctx, u.ID, tier); err != nil {
			failed++
			m.logger.Warn("save highest package failed",
				slog.String("user", u.ID.Hex()),
				slog.String("error", err.Error()),
			)
			return nil
		}
		updated++
		m.logger.Info("highest package set",
			slog.String("user", u.ID.Hex()),
			slog.String("highestPackage", string(tier)),
		)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("iterate enrolled users: %w", err)
	}

	return success(fmt.Sprintf("%d users updated", updated), map[string]int64{
		"processed": processed,
		"updated":   updated,
		"skipped":   skipped,
		"failed":    failed,
	}), nil
}

// Down removes highestPackage wherever it is present.
func (m *HighestPackage) Down(ctx context.Context) (Result, error) {
	modified, err := m.users.UnsetHighestPackage(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("unset highest package: %w", err)
	}
	m.logger.Info("highest package removed", slog.Int64("modified", modified))
	return success(fmt.Sprintf("%d users updated", modified), map[string]int64{"modified": modified}), nil
}
