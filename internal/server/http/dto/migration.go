package dto

import "time"

// UpRequest selects the last migration to apply. Empty applies all.
type UpRequest struct {
	Target string `json:"target"`
}

// DownRequest sets how many applied migrations to revert.
type DownRequest struct {
	Steps int `json:"steps" binding:"required,min=1"`
}

// OutcomeResponse describes one executed migration.
type OutcomeResponse struct {
	Name       string           `json:"name"`
	Direction  string           `json:"direction"`
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Counts     map[string]int64 `json:"counts,omitempty"`
	DurationMs int64            `json:"duration_ms"`
}

// StatusResponse describes a registered migration.
type StatusResponse struct {
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// ErrorResponse is returned with non-2xx statuses of migration endpoints.
// Outcomes lists migrations completed before the failure.
type ErrorResponse struct {
	Error    string            `json:"error"`
	Outcomes []OutcomeResponse `json:"outcomes,omitempty"`
}
