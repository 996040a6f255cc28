/**
 * @description
 * Scheduled job implementations. The expiration sweep runs on a cron
 * schedule in addition to being invoked by the listing path, so past-due
 * records are transitioned even when nobody is looking at the dashboard.
 */
package app

import (
	"context"
	"log/slog"
)

// Reconciler is the sweep operation the jobs runner triggers.
type Reconciler interface {
	ReconcileExpirations(ctx context.Context) (int, error)
}

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	reconciler Reconciler
	logger     *slog.Logger
}

// NewJobs creates a new Jobs runner.
func NewJobs(reconciler Reconciler, logger *slog.Logger) *Jobs {
	return &Jobs{reconciler: reconciler, logger: logger}
}

// RunExpirationSweep transitions past-due client statuses to EXPIRED.
func (j *Jobs) RunExpirationSweep() {
	j.logger.Info("starting expiration sweep job")
	ctx := context.Background()

	count, err := j.reconciler.ReconcileExpirations(ctx)
	if err != nil {
		j.logger.Error("expiration sweep job failed", "error", err)
		return
	}

	if count == 0 {
		j.logger.Info("expiration sweep job finished, nothing to expire")
		return
	}
	j.logger.Info("expiration sweep job finished", "expired", count)
}
