package workflow

import (
	"context"

	"talenthub/pipeline-service/internal/model"
)

// AuthContext identifies the actor performing a mutation. It is passed
// explicitly into every call instead of being read from ambient request
// state, so the core stays usable from any transport.
type AuthContext struct {
	ActorID string
}

// Invalidator is the view-invalidation port. Invalidate signals that a
// path's data changed; it is fire-and-forget — a failed invalidation is
// logged by the service and never fails the mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// EntityStore is the persistence port the mutation service writes through.
// Implementations return errors from the internal/errors taxonomy: a missing
// row is ierr.ErrNotFound, an infrastructure failure ierr.ErrStore.
//
// List ordering contract: every List* returns newest-created first, except
// ListInterviews (scheduled date ascending) and ListCandidates (name
// ascending).
type EntityStore interface {
	CandidateStore
	JobPostingStore
	ApplicationStore
	PipelineStore
	InterviewStore
	OfferStore
}

// CandidateStore persists Candidate identities. InsertCandidate must refuse
// a duplicate email.
type CandidateStore interface {
	GetCandidate(ctx context.Context, id string) (*model.Candidate, error)
	ListCandidates(ctx context.Context) ([]model.Candidate, error)
	InsertCandidate(ctx context.Context, c *model.Candidate) error
}

// JobPostingStore persists JobPosting rows, including the derived
// applicants counter.
type JobPostingStore interface {
	GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error)
	ListJobPostings(ctx context.Context) ([]model.JobPosting, error)
	InsertJobPosting(ctx context.Context, j *model.JobPosting) error
	UpdateJobPosting(ctx context.Context, j *model.JobPosting) error
	DeleteJobPosting(ctx context.Context, id string) error
	// AddApplicants adjusts the applicants counter by delta and returns the
	// new value.
	AddApplicants(ctx context.Context, jobID string, delta int) (int, error)
	// SetApplicants overwrites the applicants counter (recount repair path).
	SetApplicants(ctx context.Context, jobID string, n int) error
}

// ApplicationStore persists Application rows.
type ApplicationStore interface {
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	ListApplications(ctx context.Context) ([]model.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]model.Application, error)
	InsertApplication(ctx context.Context, a *model.Application) error
	UpdateApplication(ctx context.Context, a *model.Application) error
	DeleteApplication(ctx context.Context, id string) error
}

// PipelineStore persists Pipeline rows.
type PipelineStore interface {
	GetPipeline(ctx context.Context, id string) (*model.Pipeline, error)
	ListPipelines(ctx context.Context) ([]model.Pipeline, error)
	InsertPipeline(ctx context.Context, p *model.Pipeline) error
	UpdatePipeline(ctx context.Context, p *model.Pipeline) error
	DeletePipeline(ctx context.Context, id string) error
}

// InterviewStore persists Interview rows.
type InterviewStore interface {
	GetInterview(ctx context.Context, id string) (*model.Interview, error)
	ListInterviews(ctx context.Context) ([]model.Interview, error)
	InsertInterview(ctx context.Context, i *model.Interview) error
	UpdateInterview(ctx context.Context, i *model.Interview) error
	DeleteInterview(ctx context.Context, id string) error
}

// OfferStore persists Offer rows.
type OfferStore interface {
	GetOffer(ctx context.Context, id string) (*model.Offer, error)
	ListOffers(ctx context.Context) ([]model.Offer, error)
	InsertOffer(ctx context.Context, o *model.Offer) error
	UpdateOffer(ctx context.Context, o *model.Offer) error
	DeleteOffer(ctx context.Context, id string) error
}
