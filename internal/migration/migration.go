// Package migration holds the versioned, reversible migrations of the LMS
// document store and the runner that applies them in order.
package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Migration is a named forward/backward transition of persisted state.
// Up and Down must both be safe to call whether or not the migration is
// currently applied.
type Migration interface {
	Name() string
	Up(ctx context.Context) (Result, error)
	Down(ctx context.Context) (Result, error)
}

// Result summarises a successful transition.
type Result struct {
	Success bool
	Counts  map[string]int64
	Message string
}

func success(message string, counts map[string]int64) Result {
	return Result{Success: true, Counts: counts, Message: message}
}

// String renders the message followed by counts in key order.
func (r Result) String() string {
	keys := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	if r.Message != "" {
		parts = append(parts, r.Message)
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, r.Counts[k]))
	}
	return strings.Join(parts, " ")
}
