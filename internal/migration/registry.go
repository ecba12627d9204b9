package migration

import (
	"fmt"
	"sort"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
)

// Registry keeps migrations ordered by ascending name.
type Registry struct {
	migrations []Migration
}

// NewRegistry validates names and sorts migrations.
func NewRegistry(migrations ...Migration) (*Registry, error) {
	seen := make(map[string]struct{}, len(migrations))
	sorted := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		name := m.Name()
		if name == "" {
			return nil, fmt.Errorf("migration with empty name: %w", domainErrors.ErrUnknownMigration)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s: %w", name, domainErrors.ErrDuplicateMigration)
		}
		seen[name] = struct{}{}
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	return &Registry{migrations: sorted}, nil
}

// All returns migrations in execution order.
func (r *Registry) All() []Migration {
	out := make([]Migration, len(r.migrations))
	copy(out, r.migrations)
	return out
}

// Lookup finds a migration by name.
func (r *Registry) Lookup(name string) (Migration, bool) {
	for _, m := range r.migrations {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Until returns migrations up to and including target. An empty target
// selects all of them.
func (r *Registry) Until(target string) ([]Migration, error) {
	if target == "" {
		return r.All(), nil
	}
	for i, m := range r.migrations {
		if m.Name() == target {
			out := make([]Migration, i+1)
			copy(out, r.migrations[:i+1])
			return out, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", target, domainErrors.ErrUnknownMigration)
}
