package test

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs every OnStart hook in order.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart != nil {
			if err := h.OnStart(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stop runs every OnStop hook in reverse order.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		if h := l.Hooks[i]; h.OnStop != nil {
			if err := h.OnStop(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}

	mu      sync.Mutex
	options [][]fx.ShutdownOption
}

// Shutdown notifies tests about termination.
func (s *ShutdownerStub) Shutdown(opts ...fx.ShutdownOption) error {
	s.mu.Lock()
	s.options = append(s.options, opts)
	s.mu.Unlock()
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Calls returns how many times Shutdown was invoked.
func (s *ShutdownerStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.options)
}
