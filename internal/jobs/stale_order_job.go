package jobs

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob manages the scheduled escalation of quiet orders.
// Orders that saw no mutation for the configured window are flagged urgent
// so the floor picks them up before the due date slips.
type StaleOrderJob struct {
	handler    commands.MarkStaleOrdersCommandHandler
	cron       *cron.Cron
	spec       string
	staleAfter time.Duration
	logger     *slog.Logger
}

// NewStaleOrderJob creates a job that sweeps for stale orders on the given
// cron spec (standard five-field expression).
func NewStaleOrderJob(
	handler commands.MarkStaleOrdersCommandHandler,
	spec string,
	staleAfter time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:    handler,
		cron:       cron.New(),
		spec:       spec,
		staleAfter: staleAfter,
		logger:     logger.With("component", "stale_order_job"),
	}
}

// Start schedules the stale-order sweep.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewMarkStaleOrdersCommand(j.staleAfter)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started",
		"spec", j.spec, "staleAfter", j.staleAfter.String())
	return nil
}

// Stop stops the stale-order sweep.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
