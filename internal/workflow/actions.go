package workflow

import (
	"context"

	ierr "talenthub/pipeline-service/internal/errors"
	"talenthub/pipeline-service/internal/logger"
)

// Result is the uniform shape every action hands to the presentation layer.
// No error crosses this boundary: callers check Success, never recover from
// a fault. Error carries the user-readable message; store failures surface
// only a generic message, the detail stays in the log.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Actions adapts the mutation service to the presentation layer: one
// function per create/update/delete/updateStatus per entity kind, each
// returning a Result instead of an error.
type Actions struct {
	svc *Service
	log *logger.Logger
}

// NewActions wraps a Service in the uniform result surface.
func NewActions(svc *Service, log *logger.Logger) *Actions {
	return &Actions{svc: svc, log: log}
}

// Service exposes the underlying mutation service for callers that want
// typed errors instead of results.
func (a *Actions) Service() *Service { return a.svc }

// ok wraps a successful payload.
func ok(data any) Result { return Result{Success: true, Data: data} }

// fail converts a taxonomy error to a Result, logging store failures with
// their full detail.
func (a *Actions) fail(op string, err error) Result {
	if ierr.IsStore(err) {
		a.log.Errorw("store failure", "op", op, "err", err)
	}
	return Result{Success: false, Error: ierr.DisplayMessage(err)}
}

// run folds the (entity, error) pair every service mutation returns into a
// Result.
func (a *Actions) run(op string, data any, err error) Result {
	if err != nil {
		return a.fail(op, err)
	}
	return ok(data)
}

// ─── Candidate ───────────────────────────────────────────────────────────────

func (a *Actions) CreateCandidate(ctx context.Context, auth AuthContext, in CreateCandidateInput) Result {
	c, err := a.svc.CreateCandidate(ctx, auth, in)
	return a.run("createCandidate", c, err)
}

func (a *Actions) GetCandidates(ctx context.Context) Result {
	cs, err := a.svc.ListCandidates(ctx)
	return a.run("getCandidates", cs, err)
}

// ─── JobPosting ──────────────────────────────────────────────────────────────

func (a *Actions) CreateJobPosting(ctx context.Context, auth AuthContext, in JobPostingInput) Result {
	j, err := a.svc.CreateJobPosting(ctx, auth, in)
	return a.run("createJobPosting", j, err)
}

func (a *Actions) UpdateJobPosting(ctx context.Context, auth AuthContext, id string, in JobPostingInput) Result {
	j, err := a.svc.UpdateJobPosting(ctx, auth, id, in)
	return a.run("updateJobPosting", j, err)
}

func (a *Actions) UpdateJobStatus(ctx context.Context, auth AuthContext, id, status string) Result {
	j, err := a.svc.UpdateJobStatus(ctx, auth, id, status)
	return a.run("updateJobStatus", j, err)
}

func (a *Actions) DeleteJobPosting(ctx context.Context, auth AuthContext, id string) Result {
	return a.run("deleteJobPosting", nil, a.svc.DeleteJobPosting(ctx, auth, id))
}

func (a *Actions) GetJobPostings(ctx context.Context) Result {
	js, err := a.svc.ListJobPostings(ctx)
	return a.run("getJobPostings", js, err)
}

// ─── Application ─────────────────────────────────────────────────────────────

func (a *Actions) CreateApplication(ctx context.Context, auth AuthContext, in ApplicationInput) Result {
	app, err := a.svc.CreateApplication(ctx, auth, in)
	return a.run("createApplication", app, err)
}

func (a *Actions) UpdateApplication(ctx context.Context, auth AuthContext, id string, in ApplicationInput) Result {
	app, err := a.svc.UpdateApplication(ctx, auth, id, in)
	return a.run("updateApplication", app, err)
}

func (a *Actions) UpdateApplicationStatus(ctx context.Context, auth AuthContext, id, status string) Result {
	app, err := a.svc.UpdateApplicationStatus(ctx, auth, id, status)
	return a.run("updateApplicationStatus", app, err)
}

func (a *Actions) DeleteApplication(ctx context.Context, auth AuthContext, id string) Result {
	return a.run("deleteApplication", nil, a.svc.DeleteApplication(ctx, auth, id))
}

func (a *Actions) GetApplications(ctx context.Context) Result {
	apps, err := a.svc.ListApplications(ctx)
	return a.run("getApplications", apps, err)
}

// ─── Pipeline ────────────────────────────────────────────────────────────────

func (a *Actions) CreatePipeline(ctx context.Context, auth AuthContext, in PipelineInput) Result {
	p, err := a.svc.CreatePipeline(ctx, auth, in)
	return a.run("createPipeline", p, err)
}

func (a *Actions) UpdatePipeline(ctx context.Context, auth AuthContext, id string, in PipelineInput) Result {
	p, err := a.svc.UpdatePipeline(ctx, auth, id, in)
	return a.run("updatePipeline", p, err)
}

func (a *Actions) UpdatePipelineStage(ctx context.Context, auth AuthContext, id, stage string) Result {
	p, err := a.svc.UpdatePipelineStage(ctx, auth, id, stage)
	return a.run("updatePipelineStage", p, err)
}

func (a *Actions) MovePipelineNext(ctx context.Context, auth AuthContext, id string) Result {
	p, err := a.svc.MovePipelineNext(ctx, auth, id)
	return a.run("movePipelineNext", p, err)
}

func (a *Actions) MovePipelinePrevious(ctx context.Context, auth AuthContext, id string) Result {
	p, err := a.svc.MovePipelinePrevious(ctx, auth, id)
	return a.run("movePipelinePrevious", p, err)
}

func (a *Actions) DeletePipeline(ctx context.Context, auth AuthContext, id string) Result {
	return a.run("deletePipeline", nil, a.svc.DeletePipeline(ctx, auth, id))
}

func (a *Actions) GetPipelines(ctx context.Context) Result {
	ps, err := a.svc.ListPipelines(ctx)
	return a.run("getPipelines", ps, err)
}

func (a *Actions) GetPipelineBoard(ctx context.Context) Result {
	b, err := a.svc.PipelineBoard(ctx)
	return a.run("getPipelineBoard", b, err)
}

// ─── Interview ───────────────────────────────────────────────────────────────

func (a *Actions) CreateInterview(ctx context.Context, auth AuthContext, in InterviewInput) Result {
	i, err := a.svc.CreateInterview(ctx, auth, in)
	return a.run("createInterview", i, err)
}

func (a *Actions) UpdateInterview(ctx context.Context, auth AuthContext, id string, in InterviewInput) Result {
	i, err := a.svc.UpdateInterview(ctx, auth, id, in)
	return a.run("updateInterview", i, err)
}

func (a *Actions) UpdateInterviewStatus(ctx context.Context, auth AuthContext, id, status string) Result {
	i, err := a.svc.UpdateInterviewStatus(ctx, auth, id, status)
	return a.run("updateInterviewStatus", i, err)
}

func (a *Actions) DeleteInterview(ctx context.Context, auth AuthContext, id string) Result {
	return a.run("deleteInterview", nil, a.svc.DeleteInterview(ctx, auth, id))
}

func (a *Actions) GetInterviews(ctx context.Context) Result {
	is, err := a.svc.ListInterviews(ctx)
	return a.run("getInterviews", is, err)
}

// ─── Offer ───────────────────────────────────────────────────────────────────

func (a *Actions) CreateOffer(ctx context.Context, auth AuthContext, in OfferInput) Result {
	o, err := a.svc.CreateOffer(ctx, auth, in)
	return a.run("createOffer", o, err)
}

func (a *Actions) UpdateOffer(ctx context.Context, auth AuthContext, id string, in OfferInput) Result {
	o, err := a.svc.UpdateOffer(ctx, auth, id, in)
	return a.run("updateOffer", o, err)
}

func (a *Actions) UpdateOfferStatus(ctx context.Context, auth AuthContext, id, status string) Result {
	o, err := a.svc.UpdateOfferStatus(ctx, auth, id, status)
	return a.run("updateOfferStatus", o, err)
}

func (a *Actions) DeleteOffer(ctx context.Context, auth AuthContext, id string) Result {
	return a.run("deleteOffer", nil, a.svc.DeleteOffer(ctx, auth, id))
}

func (a *Actions) GetOffers(ctx context.Context) Result {
	os, err := a.svc.ListOffers(ctx)
	return a.run("getOffers", os, err)
}

// RecountApplicants runs the counter repair for one posting.
func (a *Actions) RecountApplicants(ctx context.Context, auth AuthContext, jobID string) Result {
	n, err := a.svc.Counters().Recount(ctx, jobID)
	return a.run("recountApplicants", n, err)
}
