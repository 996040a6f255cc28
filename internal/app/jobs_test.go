package app

import (
	"context"
	"errors"
	"testing"
)

type stubReconciler struct {
	count int
	err   error
	calls int
}

func (r *stubReconciler) ReconcileExpirations(ctx context.Context) (int, error) {
	r.calls++
	return r.count, r.err
}

func TestRunExpirationSweepInvokesReconciler(t *testing.T) {
	reconciler := &stubReconciler{count: 3}
	jobs := NewJobs(reconciler, testLogger())

	jobs.RunExpirationSweep()
	if reconciler.calls != 1 {
		t.Fatalf("expected one reconcile call, got %d", reconciler.calls)
	}
}

func TestRunExpirationSweepToleratesFailure(t *testing.T) {
	reconciler := &stubReconciler{err: errors.New("db down")}
	jobs := NewJobs(reconciler, testLogger())

	// Must not panic; the scheduler keeps running the job on its cadence.
	jobs.RunExpirationSweep()
	if reconciler.calls != 1 {
		t.Fatalf("expected one reconcile call, got %d", reconciler.calls)
	}
}
