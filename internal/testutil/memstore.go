// Package testutil provides in-memory implementations of the workflow ports
// for tests: a mutex-guarded EntityStore and an invalidation recorder.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	ierr "talenthub/pipeline-service/internal/errors"
	"talenthub/pipeline-service/internal/model"
	"talenthub/pipeline-service/internal/workflow"
)

var _ workflow.EntityStore = (*InMemoryStore)(nil)

// InMemoryStore keeps every entity in maps guarded by one mutex. Rows are
// stored and returned by value so callers never alias store state. A
// monotonic sequence breaks creation-time ties so list ordering is stable
// even when two rows land in the same nanosecond.
type InMemoryStore struct {
	mu  sync.RWMutex
	seq int64

	candidates  map[string]candidateRow
	jobPostings map[string]jobPostingRow
	apps        map[string]applicationRow
	pipelines   map[string]pipelineRow
	interviews  map[string]interviewRow
	offers      map[string]offerRow
}

type candidateRow struct {
	v   model.Candidate
	seq int64
}
type jobPostingRow struct {
	v   model.JobPosting
	seq int64
}
type applicationRow struct {
	v   model.Application
	seq int64
}
type pipelineRow struct {
	v   model.Pipeline
	seq int64
}
type interviewRow struct {
	v   model.Interview
	seq int64
}
type offerRow struct {
	v   model.Offer
	seq int64
}

// NewInMemoryStore returns an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		candidates:  make(map[string]candidateRow),
		jobPostings: make(map[string]jobPostingRow),
		apps:        make(map[string]applicationRow),
		pipelines:   make(map[string]pipelineRow),
		interviews:  make(map[string]interviewRow),
		offers:      make(map[string]offerRow),
	}
}

func (s *InMemoryStore) next() int64 {
	s.seq++
	return s.seq
}

// ─── Candidate ───────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.candidates[id]
	if !ok {
		return nil, ierr.NotFound("candidate", id)
	}
	c := row.v
	return &c, nil
}

func (s *InMemoryStore) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := lo.Map(lo.Values(s.candidates), func(r candidateRow, _ int) model.Candidate { return r.v })
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) InsertCandidate(ctx context.Context, c *model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.candidates {
		if row.v.Email == c.Email {
			return ierr.Validation("candidate email %q already exists", c.Email)
		}
	}
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.candidates[c.ID] = candidateRow{v: *c, seq: s.next()}
	return nil
}

// ─── JobPosting ──────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.jobPostings[id]
	if !ok {
		return nil, ierr.NotFound("job posting", id)
	}
	j := row.v
	return &j, nil
}

func (s *InMemoryStore) ListJobPostings(ctx context.Context) ([]model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := lo.Values(s.jobPostings)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return lo.Map(rows, func(r jobPostingRow, _ int) model.JobPosting { return r.v }), nil
}

func (s *InMemoryStore) InsertJobPosting(ctx context.Context, j *model.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	j.ID = uuid.NewString()
	j.CreatedAt = now
	j.UpdatedAt = now
	s.jobPostings[j.ID] = jobPostingRow{v: *j, seq: s.next()}
	return nil
}

func (s *InMemoryStore) UpdateJobPosting(ctx context.Context, j *model.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.jobPostings[j.ID]
	if !ok {
		return ierr.NotFound("job posting", j.ID)
	}
	j.Applicants = row.v.Applicants
	j.CreatedAt = row.v.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	row.v = *j
	s.jobPostings[j.ID] = row
	return nil
}

func (s *InMemoryStore) DeleteJobPosting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobPostings[id]; !ok {
		return ierr.NotFound("job posting", id)
	}
	delete(s.jobPostings, id)
	return nil
}

func (s *InMemoryStore) AddApplicants(ctx context.Context, jobID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.jobPostings[jobID]
	if !ok {
		return 0, ierr.NotFound("job posting", jobID)
	}
	row.v.Applicants += delta
	row.v.UpdatedAt = time.Now().UTC()
	s.jobPostings[jobID] = row
	return row.v.Applicants, nil
}

func (s *InMemoryStore) SetApplicants(ctx context.Context, jobID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.jobPostings[jobID]
	if !ok {
		return ierr.NotFound("job posting", jobID)
	}
	row.v.Applicants = n
	row.v.UpdatedAt = time.Now().UTC()
	s.jobPostings[jobID] = row
	return nil
}

// SeedApplicants force-sets the counter without touching updatedAt, so
// tests can simulate drift.
func (s *InMemoryStore) SeedApplicants(jobID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.jobPostings[jobID]
	if !ok {
		return
	}
	row.v.Applicants = n
	s.jobPostings[jobID] = row
}

// ─── Application ─────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.apps[id]
	if !ok {
		return nil, ierr.NotFound("application", id)
	}
	a := row.v
	return &a, nil
}

func (s *InMemoryStore) listApplications(filter func(model.Application) bool) []model.Application {
	rows := lo.Filter(lo.Values(s.apps), func(r applicationRow, _ int) bool { return filter(r.v) })
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return lo.Map(rows, func(r applicationRow, _ int) model.Application { return r.v })
}

func (s *InMemoryStore) ListApplications(ctx context.Context) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listApplications(func(model.Application) bool { return true }), nil
}

func (s *InMemoryStore) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listApplications(func(a model.Application) bool { return a.JobID == jobID }), nil
}

func (s *InMemoryStore) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listApplications(func(a model.Application) bool { return a.CandidateID == candidateID }), nil
}

func (s *InMemoryStore) InsertApplication(ctx context.Context, a *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.apps[a.ID] = applicationRow{v: *a, seq: s.next()}
	return nil
}

func (s *InMemoryStore) UpdateApplication(ctx context.Context, a *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.apps[a.ID]
	if !ok {
		return ierr.NotFound("application", a.ID)
	}
	a.AppliedDate = row.v.AppliedDate
	a.CreatedAt = row.v.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	row.v = *a
	s.apps[a.ID] = row
	return nil
}

func (s *InMemoryStore) DeleteApplication(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return ierr.NotFound("application", id)
	}
	delete(s.apps, id)
	return nil
}

// ─── Pipeline ────────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetPipeline(ctx context.Context, id string) (*model.Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.pipelines[id]
	if !ok {
		return nil, ierr.NotFound("pipeline", id)
	}
	p := row.v
	return &p, nil
}

func (s *InMemoryStore) ListPipelines(ctx context.Context) ([]model.Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := lo.Values(s.pipelines)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return lo.Map(rows, func(r pipelineRow, _ int) model.Pipeline { return r.v }), nil
}

func (s *InMemoryStore) InsertPipeline(ctx context.Context, p *model.Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.pipelines[p.ID] = pipelineRow{v: *p, seq: s.next()}
	return nil
}

func (s *InMemoryStore) UpdatePipeline(ctx context.Context, p *model.Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.pipelines[p.ID]
	if !ok {
		return ierr.NotFound("pipeline", p.ID)
	}
	p.CreatedAt = row.v.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	row.v = *p
	s.pipelines[p.ID] = row
	return nil
}

func (s *InMemoryStore) DeletePipeline(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pipelines[id]; !ok {
		return ierr.NotFound("pipeline", id)
	}
	delete(s.pipelines, id)
	return nil
}

// ─── Interview ───────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetInterview(ctx context.Context, id string) (*model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.interviews[id]
	if !ok {
		return nil, ierr.NotFound("interview", id)
	}
	i := row.v
	return &i, nil
}

func (s *InMemoryStore) ListInterviews(ctx context.Context) ([]model.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := lo.Values(s.interviews)
	// Schedule order, not creation order.
	sort.Slice(rows, func(i, j int) bool { return rows[i].v.Date.Before(rows[j].v.Date) })
	return lo.Map(rows, func(r interviewRow, _ int) model.Interview { return r.v }), nil
}

func (s *InMemoryStore) InsertInterview(ctx context.Context, i *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	i.ID = uuid.NewString()
	i.CreatedAt = now
	i.UpdatedAt = now
	s.interviews[i.ID] = interviewRow{v: *i, seq: s.next()}
	return nil
}

func (s *InMemoryStore) UpdateInterview(ctx context.Context, i *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.interviews[i.ID]
	if !ok {
		return ierr.NotFound("interview", i.ID)
	}
	i.CreatedAt = row.v.CreatedAt
	i.UpdatedAt = time.Now().UTC()
	row.v = *i
	s.interviews[i.ID] = row
	return nil
}

func (s *InMemoryStore) DeleteInterview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interviews[id]; !ok {
		return ierr.NotFound("interview", id)
	}
	delete(s.interviews, id)
	return nil
}

// ─── Offer ───────────────────────────────────────────────────────────────────

func (s *InMemoryStore) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.offers[id]
	if !ok {
		return nil, ierr.NotFound("offer", id)
	}
	o := row.v
	return &o, nil
}

func (s *InMemoryStore) ListOffers(ctx context.Context) ([]model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := lo.Values(s.offers)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return lo.Map(rows, func(r offerRow, _ int) model.Offer { return r.v }), nil
}

func (s *InMemoryStore) InsertOffer(ctx context.Context, o *model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now
	s.offers[o.ID] = offerRow{v: *o, seq: s.next()}
	return nil
}

func (s *InMemoryStore) UpdateOffer(ctx context.Context, o *model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.offers[o.ID]
	if !ok {
		return ierr.NotFound("offer", o.ID)
	}
	o.CreatedAt = row.v.CreatedAt
	o.UpdatedAt = time.Now().UTC()
	row.v = *o
	s.offers[o.ID] = row
	return nil
}

func (s *InMemoryStore) DeleteOffer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[id]; !ok {
		return ierr.NotFound("offer", id)
	}
	delete(s.offers, id)
	return nil
}
