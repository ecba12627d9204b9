package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// PackageTypesName identifies the package tier remap migration.
const PackageTypesName = "002_package_types"

// legacyPackageRemap moves courses off the legacy tier tags. CourseLimit
// follows the original tag.
var legacyPackageRemap = model.PackageRemap{
	{From: model.PackagePremium, To: model.PackageElite, CourseLimit: 1},
	{From: model.PackageElite, To: model.PackageCreator, CourseLimit: 3},
	{From: model.PackageSupreme, To: model.PackageMaster, CourseLimit: 6},
}

// PackageTypes rewrites legacy course tiers and sets their course limits.
type PackageTypes struct {
	courses repository.CourseRepository
	logger  *slog.Logger
}

// NewPackageTypes constructs PackageTypes.
func NewPackageTypes(courses repository.CourseRepository, logger *slog.Logger) *PackageTypes {
	return &PackageTypes{courses: courses, logger: logger}
}

func (m *PackageTypes) Name() string { return PackageTypesName }

// Up remaps legacy tags. Tags outside the remap are untouched.
func (m *PackageTypes) Up(ctx context.Context) (Result, error) {
	modified, err := m.courses.RemapPackageTypes(ctx, legacyPackageRemap)
	if err != nil {
		return Result{}, fmt.Errorf("remap package types: %w", err)
	}
	m.logger.Info("package types remapped", slog.Int64("modified", modified))
	return success(fmt.Sprintf("%d courses remapped", modified), map[string]int64{"modified": modified}), nil
}

// Down restores the legacy tags and removes courseLimit.
func (m *PackageTypes) Down(ctx context.Context) (Result, error) {
	modified, err := m.courses.RevertPackageTypes(ctx, legacyPackageRemap.Inverse())
	if err != nil {
		return Result{}, fmt.Errorf("revert package types: %w", err)
	}
	m.logger.Info("package types reverted", slog.Int64("modified", modified))
	return success(fmt.Sprintf("%d courses reverted", modified), map[string]int64{"modified": modified}), nil
}
