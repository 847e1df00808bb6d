package workflow

import (
	"context"

	"talenthub/pipeline-service/internal/logger"
)

// CounterReconciler keeps JobPosting.applicants in step with the live
// Application rows for that job. The increment on create is not atomic with
// the application write; Recount is the sanctioned repair for any drift.
type CounterReconciler struct {
	store EntityStore
	log   *logger.Logger
}

// NewCounterReconciler wires a reconciler over the given store.
func NewCounterReconciler(store EntityStore, log *logger.Logger) *CounterReconciler {
	return &CounterReconciler{store: store, log: log}
}

// OnApplicationCreated bumps the posting's applicants counter by one.
func (r *CounterReconciler) OnApplicationCreated(ctx context.Context, jobID string) error {
	_, err := r.store.AddApplicants(ctx, jobID, 1)
	return err
}

// Recount recomputes applicants from the live Application rows and writes
// the result back. Idempotent and safe to call at any time.
func (r *CounterReconciler) Recount(ctx context.Context, jobID string) (int, error) {
	apps, err := r.store.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	// Rows count, not distinct candidates: duplicate applications each count.
	count := len(apps)
	if err := r.store.SetApplicants(ctx, jobID, count); err != nil {
		return 0, err
	}
	r.log.Debugw("applicants recounted", "jobId", jobID, "count", count)
	return count, nil
}
