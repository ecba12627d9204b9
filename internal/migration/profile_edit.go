package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// ProfileEditRestrictionName identifies the profile edit backfill.
const ProfileEditRestrictionName = "003_profile_edit_restriction"

// ProfileEditRestriction defaults hasEditedProfile and profileEditDate.
type ProfileEditRestriction struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewProfileEditRestriction constructs ProfileEditRestriction.
func NewProfileEditRestriction(users repository.UserRepository, logger *slog.Logger) *ProfileEditRestriction {
	return &ProfileEditRestriction{users: users, logger: logger}
}

func (m *ProfileEditRestriction) Name() string { return ProfileEditRestrictionName }

// Up sets hasEditedProfile=false and profileEditDate=null on users lacking
// both fields. Users carrying only one of them are left alone.
func (m *ProfileEditRestriction) Up(ctx context.Context) (Result, error) {
	modified, err := m.users.SetProfileEditDefaults(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("set profile edit defaults: %w", err)
	}
	m.logger.Info("profile edit fields added", slog.Int64("modified", modified))
	return success(fmt.Sprintf("%d users updated", modified), map[string]int64{"modified": modified}), nil
}

// Down removes both fields from every user.
func (m *ProfileEditRestriction) Down(ctx context.Context) (Result, error) {
	modified, err := m.users.UnsetProfileEditFields(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("unset profile edit fields: %w", err)
	}
	m.logger.Info("profile edit fields removed", slog.Int64("modified", modified))
	return success(fmt.Sprintf("%d users updated", modified), map[string]int64{"modified": modified}), nil
}
