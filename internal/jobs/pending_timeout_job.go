package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingTimeoutJob sweeps orders stuck in pending, typically left behind
// when the payment gateway went down between the pending insert and the
// confirmation. Runs every 30 seconds and fails every pending order older
// than the configured age across all restaurants.
type PendingTimeoutJob struct {
	handler       commands.FailStaleOrdersCommandHandler
	maxPendingAge time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewPendingTimeoutJob creates the sweep job. maxPendingAge is how long an
// order may sit in pending before the sweep fails it.
func NewPendingTimeoutJob(
	handler commands.FailStaleOrdersCommandHandler,
	maxPendingAge time.Duration,
	logger *slog.Logger,
) *PendingTimeoutJob {
	return &PendingTimeoutJob{
		handler:       handler,
		maxPendingAge: maxPendingAge,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "pending_timeout_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *PendingTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewFailStaleOrdersCommand(j.maxPendingAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Pending timeout sweep misconfigured", "error", cmdErr)
			return
		}

		failed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Pending timeout sweep failed", "error", handleErr)
			return
		}

		if failed > 0 {
			j.logger.InfoContext(ctx, "Pending timeout sweep failed stale orders", "count", failed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending timeout job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *PendingTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending timeout job stopped")
}
