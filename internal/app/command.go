package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
)

// Pusher delivers collected metrics once a command finishes.
type Pusher interface {
	Push(ctx context.Context) error
}

// CommandRunner executes a one-shot CLI command.
type CommandRunner struct {
	command     string
	target      string
	steps       int
	timeout     time.Duration
	pushTimeout time.Duration
	migrations  Migrations
	metrics     Pusher
	logger      *slog.Logger
}

// NewCommandRunner constructs CommandRunner from configuration.
func NewCommandRunner(cfg *config.Config, migrations Migrations, metrics Pusher, logger *slog.Logger) *CommandRunner {
	return &CommandRunner{
		command:     cfg.Command,
		target:      cfg.Target,
		steps:       cfg.Steps,
		timeout:     cfg.MigrationTimeout,
		pushTimeout: cfg.ShutdownTimeout,
		migrations:  migrations,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run executes the configured command and returns the process exit code.
func (r *CommandRunner) Run(ctx context.Context) int {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	err := r.execute(runCtx)
	cancel()

	pushCtx, cancelPush := context.WithTimeout(context.WithoutCancel(ctx), r.pushTimeout)
	if perr := r.metrics.Push(pushCtx); perr != nil {
		r.logger.Warn("push metrics failed", slog.String("error", perr.Error()))
	}
	cancelPush()

	if err != nil {
		r.logger.Error("command failed", slog.String("command", r.command), slog.String("error", err.Error()))
		return 1
	}
	r.logger.Info("command finished", slog.String("command", r.command))
	return 0
}

func (r *CommandRunner) execute(ctx context.Context) error {
	switch r.command {
	case config.CommandUp:
		outcomes, err := r.migrations.Up(ctx, r.target)
		r.report(outcomes)
		return err
	case config.CommandDown:
		outcomes, err := r.migrations.Down(ctx, r.steps)
		r.report(outcomes)
		return err
	case config.CommandStatus:
		statuses, err := r.migrations.Status(ctx)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			attrs := []any{slog.String("migration", st.Name), slog.Bool("applied", st.Applied)}
			if st.AppliedAt != nil {
				attrs = append(attrs, slog.Time("appliedAt", *st.AppliedAt))
			}
			r.logger.Info("migration status", attrs...)
		}
		return nil
	default:
		return fmt.Errorf("command %q cannot run once", r.command)
	}
}

func (r *CommandRunner) report(outcomes []migration.Outcome) {
	for _, o := range outcomes {
		r.logger.Info("migration summary",
			slog.String("migration", o.Name),
			slog.String("direction", string(o.Direction)),
			slog.Bool("success", o.Result.Success),
			slog.String("summary", o.Result.String()),
		)
	}
}
