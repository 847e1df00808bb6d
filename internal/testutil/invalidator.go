package testutil

import (
	"context"
	"sync"

	"talenthub/pipeline-service/internal/workflow"
)

var _ workflow.Invalidator = (*InvalidationRecorder)(nil)

// InvalidationRecorder captures invalidated paths so tests can assert which
// views a mutation touched. Setting Fail makes every call error, which lets
// tests verify that invalidation failure never fails the mutation.
type InvalidationRecorder struct {
	mu    sync.Mutex
	Paths []string
	Fail  error
}

// NewInvalidationRecorder returns an empty recorder.
func NewInvalidationRecorder() *InvalidationRecorder {
	return &InvalidationRecorder{}
}

func (r *InvalidationRecorder) Invalidate(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.Paths = append(r.Paths, path)
	return nil
}

// Count returns how many times path was invalidated.
func (r *InvalidationRecorder) Count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.Paths {
		if p == path {
			n++
		}
	}
	return n
}

// Reset clears recorded paths.
func (r *InvalidationRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Paths = nil
}
