package workflow

import (
	"context"

	"github.com/go-playground/validator/v10"

	ierr "talenthub/pipeline-service/internal/errors"
	"talenthub/pipeline-service/internal/logger"
	"talenthub/pipeline-service/internal/model"
)

// View paths invalidated after successful writes. They mirror the dashboard
// routes that list each entity.
const (
	PathApplications = "/jobs/applications"
	PathPipeline     = "/jobs/pipeline"
	PathInterviews   = "/jobs/interviews"
	PathOffers       = "/recruitment/offers"
	PathPostings     = "/jobs/postings"
	PathCandidates   = "/recruitment/candidates"
)

// Service is the mutation layer every create/update/delete funnels through.
// Each public operation is one read-decide-write round: load current state,
// ask the policy, persist, signal invalidation.
//
// Concurrency: the read-decide-write sequence carries no optimistic version
// check — two concurrent status updates on the same id race and the last
// write wins. Distinct ids never contend.
type Service struct {
	store    EntityStore
	policy   TransitionPolicy
	views    Invalidator
	counters *CounterReconciler
	validate *validator.Validate
	log      *logger.Logger
}

// NewService wires the mutation service with the permissive default policy.
func NewService(store EntityStore, views Invalidator, log *logger.Logger) *Service {
	return NewServiceWithPolicy(store, views, PermissivePolicy{}, log)
}

// NewServiceWithPolicy wires the mutation service with an explicit
// transition policy (e.g. StrictPolicy to enforce terminal states).
func NewServiceWithPolicy(store EntityStore, views Invalidator, policy TransitionPolicy, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		policy:   policy,
		views:    views,
		counters: NewCounterReconciler(store, log),
		validate: validator.New(),
		log:      log,
	}
}

// Counters exposes the reconciler so callers can run the recount repair.
func (s *Service) Counters() *CounterReconciler { return s.counters }

// invalidate signals the given view paths. Fire-and-forget: a failed
// invalidation is logged and never fails the mutation.
func (s *Service) invalidate(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := s.views.Invalidate(ctx, p); err != nil {
			s.log.Warnw("view invalidation failed", "path", p, "err", err)
		}
	}
}

// decide runs the transition policy and maps a rejection to a validation
// error.
func (s *Service) decide(kind Kind, current, requested string) (Decision, error) {
	d := s.policy.Decide(kind, current, requested)
	if d.Verdict == Reject {
		return d, ierr.Validation("%s", d.Reason)
	}
	return d, nil
}

// requireCandidate verifies the referenced candidate exists, mapping a
// missing row to a referential error.
func (s *Service) requireCandidate(ctx context.Context, id string) error {
	if _, err := s.store.GetCandidate(ctx, id); err != nil {
		if ierr.IsNotFound(err) {
			return ierr.Reference("candidate", id)
		}
		return err
	}
	return nil
}

// requireJobPosting verifies the referenced posting exists, mapping a
// missing row to a referential error.
func (s *Service) requireJobPosting(ctx context.Context, id string) error {
	if _, err := s.store.GetJobPosting(ctx, id); err != nil {
		if ierr.IsNotFound(err) {
			return ierr.Reference("job posting", id)
		}
		return err
	}
	return nil
}

// ─── Candidate ───────────────────────────────────────────────────────────────

// CreateCandidate registers a new candidate identity. Email must be unique;
// the store refuses duplicates.
func (s *Service) CreateCandidate(ctx context.Context, auth AuthContext, in CreateCandidateInput) (*model.Candidate, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	c := &model.Candidate{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := s.store.InsertCandidate(ctx, c); err != nil {
		return nil, err
	}
	s.log.Infow("candidate created", "candidateId", c.ID, "actor", auth.ActorID)
	s.invalidate(ctx, PathCandidates)
	return c, nil
}

// GetCandidate returns one candidate by id.
func (s *Service) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	return s.store.GetCandidate(ctx, id)
}

// ListCandidates returns all candidates, name ascending.
func (s *Service) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	return s.store.ListCandidates(ctx)
}

// CandidateDeleted is the cascade hook for the external admin action that
// removes a candidate. The core does not delete dependents itself; it
// invalidates every view that may still show them.
func (s *Service) CandidateDeleted(ctx context.Context, auth AuthContext, candidateID string) {
	s.log.Infow("candidate deleted externally, invalidating dependents",
		"candidateId", candidateID, "actor", auth.ActorID)
	s.invalidate(ctx, PathCandidates, PathApplications, PathPipeline, PathInterviews, PathOffers)
}

// ─── JobPosting ──────────────────────────────────────────────────────────────

// CreateJobPosting creates a posting with zero applicants. Status defaults
// to DRAFT and must be one of DRAFT, ACTIVE, CLOSED when given.
func (s *Service) CreateJobPosting(ctx context.Context, auth AuthContext, in JobPostingInput) (*model.JobPosting, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	status := NormalizeState(in.Status)
	if status == "" {
		status = string(JobDraft)
	}
	if !IsValidState(KindJobPosting, status) {
		return nil, ierr.Validation("unknown job posting status %q", status)
	}

	j := &model.JobPosting{
		Title:       in.Title,
		Department:  in.Department,
		Location:    in.Location,
		Salary:      in.Salary,
		Description: optionalNotes(in.Description),
		Status:      status,
		Applicants:  0,
	}
	if err := s.store.InsertJobPosting(ctx, j); err != nil {
		return nil, err
	}
	s.log.Infow("job posting created", "jobId", j.ID, "actor", auth.ActorID)
	s.invalidate(ctx, PathPostings)
	return j, nil
}

// UpdateJobPosting rewrites a posting's descriptive fields. The applicants
// counter is never touched here.
func (s *Service) UpdateJobPosting(ctx context.Context, auth AuthContext, id string, in JobPostingInput) (*model.JobPosting, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	j, err := s.store.GetJobPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	status := NormalizeState(in.Status)
	if status == "" {
		status = j.Status
	}
	if !IsValidState(KindJobPosting, status) {
		return nil, ierr.Validation("unknown job posting status %q", status)
	}

	j.Title = in.Title
	j.Department = in.Department
	j.Location = in.Location
	j.Salary = in.Salary
	j.Description = optionalNotes(in.Description)
	j.Status = status
	if err := s.store.UpdateJobPosting(ctx, j); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathPostings)
	return j, nil
}

// UpdateJobStatus sets a posting's status. Job status carries no FSM — any
// member of the enum is reachable from any other — so this rides the same
// permissive decide path as the workflow entities.
func (s *Service) UpdateJobStatus(ctx context.Context, auth AuthContext, id, status string) (*model.JobPosting, error) {
	status = NormalizeState(status)
	j, err := s.store.GetJobPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.decide(KindJobPosting, j.Status, status); err != nil {
		return nil, err
	}
	j.Status = status
	if err := s.store.UpdateJobPosting(ctx, j); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathPostings)
	return j, nil
}

// DeleteJobPosting removes a posting. Applications pointing at it keep
// their denormalized jobId; listing them simply stops resolving the title.
func (s *Service) DeleteJobPosting(ctx context.Context, auth AuthContext, id string) error {
	if err := s.store.DeleteJobPosting(ctx, id); err != nil {
		return err
	}
	s.log.Infow("job posting deleted", "jobId", id, "actor", auth.ActorID)
	s.invalidate(ctx, PathPostings)
	return nil
}

// GetJobPosting returns one posting by id.
func (s *Service) GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error) {
	return s.store.GetJobPosting(ctx, id)
}

// ListJobPostings returns all postings, newest first.
func (s *Service) ListJobPostings(ctx context.Context) ([]model.JobPosting, error) {
	return s.store.ListJobPostings(ctx)
}
