package model

import "time"

// MigrationsCollection stores the runner history.
const MigrationsCollection = "migrations"

// Direction of a migration transition.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// MigrationRecord marks a migration as applied.
type MigrationRecord struct {
	Name      string
	AppliedAt time.Time
	Duration  time.Duration
	Summary   string
}

// MigrationStatus describes a registered migration and whether it is applied.
type MigrationStatus struct {
	Name      string
	Applied   bool
	AppliedAt *time.Time
}
