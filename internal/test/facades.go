package test

import (
	"sync"
	"time"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

// Observation is one recorded migration run.
type Observation struct {
	Name      string
	Direction model.Direction
	Took      time.Duration
	Err       error
}

// RecorderStub collects observed migration runs.
type RecorderStub struct {
	mu           sync.Mutex
	Observations []Observation
}

// ObserveMigration appends an observation.
func (r *RecorderStub) ObserveMigration(name string, direction model.Direction, took time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Observations = append(r.Observations, Observation{Name: name, Direction: direction, Took: took, Err: err})
}

// Names lists observed migrations as "<name>:<direction>".
func (r *RecorderStub) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Observations))
	for _, o := range r.Observations {
		out = append(out, o.Name+":"+string(o.Direction))
	}
	return out
}
