package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	ierr "talenthub/pipeline-service/internal/errors"
	"talenthub/pipeline-service/internal/logger"
	"talenthub/pipeline-service/internal/model"
	"talenthub/pipeline-service/internal/testutil"
	"talenthub/pipeline-service/internal/workflow"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *testutil.InMemoryStore
	views   *testutil.InvalidationRecorder
	svc     *workflow.Service
	actions *workflow.Actions
	auth    workflow.AuthContext
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	log := logger.NewNop()
	s.ctx = context.Background()
	s.store = testutil.NewInMemoryStore()
	s.views = testutil.NewInvalidationRecorder()
	s.svc = workflow.NewService(s.store, s.views, log)
	s.actions = workflow.NewActions(s.svc, log)
	s.auth = workflow.AuthContext{ActorID: "recruiter-1"}
}

// ─── Fixtures ────────────────────────────────────────────────────────────────

func (s *ServiceSuite) candidate(name, email string) *model.Candidate {
	c, err := s.svc.CreateCandidate(s.ctx, s.auth, workflow.CreateCandidateInput{
		Name: name, Email: email, Phone: "(555) 123-4567",
	})
	s.Require().NoError(err)
	return c
}

func (s *ServiceSuite) jobPosting(title string) *model.JobPosting {
	j, err := s.svc.CreateJobPosting(s.ctx, s.auth, workflow.JobPostingInput{
		Title: title, Department: "Engineering", Location: "Remote",
		Salary: "$150K - $200K", Status: "ACTIVE",
	})
	s.Require().NoError(err)
	return j
}

func (s *ServiceSuite) application(candidateID, jobID string) *model.Application {
	a, err := s.svc.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{
		CandidateID: candidateID, JobID: jobID,
	})
	s.Require().NoError(err)
	return a
}

func (s *ServiceSuite) interview(candidateID string) *model.Interview {
	i, err := s.svc.CreateInterview(s.ctx, s.auth, workflow.InterviewInput{
		CandidateID: candidateID, Position: "UX Designer", Date: "2026-09-10",
		Time: "14:00", Interviewer: "Dana Flores", Location: "Room 3B",
	})
	s.Require().NoError(err)
	return i
}

func (s *ServiceSuite) offer(candidateID string) *model.Offer {
	o, err := s.svc.CreateOffer(s.ctx, s.auth, workflow.OfferInput{
		CandidateID: candidateID, Position: "UX Designer",
		Salary: "$120K - $160K", StartDate: "2026-10-01",
	})
	s.Require().NoError(err)
	return o
}

// ─── Idempotent no-op ────────────────────────────────────────────────────────

func (s *ServiceSuite) TestSameStatusUpdateIsNoOpButTouchesRow() {
	c := s.candidate("Sarah Chen", "sarah.chen@email.com")
	j := s.jobPosting("Senior Frontend Developer")
	a := s.application(c.ID, j.ID)
	before := a.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	s.views.Reset()
	got, err := s.svc.UpdateApplicationStatus(s.ctx, s.auth, a.ID, a.Status)
	s.Require().NoError(err)
	s.Equal(a.Status, got.Status)
	s.True(got.UpdatedAt.After(before), "no-op must still refresh updatedAt")

	// A no-op is still a successful write: the views are signalled.
	s.Equal(1, s.views.Count(workflow.PathApplications))

	// No counter side effect beyond the touch.
	jAfter, err := s.svc.GetJobPosting(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(1, jAfter.Applicants)
}

// ─── Structural rejection ────────────────────────────────────────────────────

func (s *ServiceSuite) TestUnknownStatusRejectedForEveryKind() {
	c := s.candidate("Mike Johnson", "mike.j@email.com")
	j := s.jobPosting("Product Manager")
	a := s.application(c.ID, j.ID)
	p, err := s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: c.ID, Position: "Product Manager",
	})
	s.Require().NoError(err)
	i := s.interview(c.ID)
	o := s.offer(c.ID)

	res := s.actions.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "NOT_A_REAL_STATUS")
	s.False(res.Success)
	s.Contains(res.Error, "NOT_A_REAL_STATUS")

	res = s.actions.UpdatePipelineStage(s.ctx, s.auth, p.ID, "NOT_A_REAL_STATUS")
	s.False(res.Success)

	res = s.actions.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "NOT_A_REAL_STATUS")
	s.False(res.Success)

	res = s.actions.UpdateOfferStatus(s.ctx, s.auth, o.ID, "NOT_A_REAL_STATUS")
	s.False(res.Success)

	res = s.actions.UpdateJobStatus(s.ctx, s.auth, j.ID, "NOT_A_REAL_STATUS")
	s.False(res.Success)

	// The enum is per kind: an Offer status is not valid for an Application.
	_, err = s.svc.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "SENT")
	s.True(ierr.IsValidation(err))
}

// Status and stage input arrives from forms in any case; every transition
// path uppercases before deciding, so "shortlisted" lands as SHORTLISTED.
func (s *ServiceSuite) TestLowercaseStatusInputIsUppercased() {
	c := s.candidate("Case Fold", "casefold@email.com")
	j := s.jobPosting("Compiler Engineer")
	a := s.application(c.ID, j.ID)

	gotA, err := s.svc.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "shortlisted")
	s.Require().NoError(err)
	s.Equal("SHORTLISTED", gotA.Status)

	p, err := s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: c.ID, Position: "Compiler Engineer",
	})
	s.Require().NoError(err)
	gotP, err := s.svc.UpdatePipelineStage(s.ctx, s.auth, p.ID, "screening")
	s.Require().NoError(err)
	s.Equal("SCREENING", gotP.Stage)

	i := s.interview(c.ID)
	gotI, err := s.svc.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "cancelled")
	s.Require().NoError(err)
	s.Equal("CANCELLED", gotI.Status)

	o := s.offer(c.ID)
	gotO, err := s.svc.UpdateOfferStatus(s.ctx, s.auth, o.ID, "sent")
	s.Require().NoError(err)
	s.Equal("SENT", gotO.Status)

	gotJ, err := s.svc.UpdateJobStatus(s.ctx, s.auth, j.ID, "closed")
	s.Require().NoError(err)
	s.Equal("CLOSED", gotJ.Status)

	// Garbage stays garbage after folding.
	_, err = s.svc.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "not_a_real_status")
	s.True(ierr.IsValidation(err))
}

// ─── Not found ───────────────────────────────────────────────────────────────

func (s *ServiceSuite) TestMissingIDSurfacesNotFoundForEveryKind() {
	const ghost = "00000000-0000-0000-0000-000000000000"
	c := s.candidate("Emma Wilson", "emma.w@email.com")

	_, err := s.svc.UpdateApplicationStatus(s.ctx, s.auth, ghost, "REVIEWING")
	s.True(ierr.IsNotFound(err))
	_, err = s.svc.UpdateApplication(s.ctx, s.auth, ghost, workflow.ApplicationInput{CandidateID: c.ID, JobID: "j"})
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(s.svc.DeleteApplication(s.ctx, s.auth, ghost)))

	_, err = s.svc.UpdatePipelineStage(s.ctx, s.auth, ghost, "SCREENING")
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(s.svc.DeletePipeline(s.ctx, s.auth, ghost)))

	_, err = s.svc.UpdateInterviewStatus(s.ctx, s.auth, ghost, "COMPLETED")
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(s.svc.DeleteInterview(s.ctx, s.auth, ghost)))

	_, err = s.svc.UpdateOfferStatus(s.ctx, s.auth, ghost, "SENT")
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(s.svc.DeleteOffer(s.ctx, s.auth, ghost)))

	res := s.actions.DeleteJobPosting(s.ctx, s.auth, ghost)
	s.False(res.Success)
	s.Contains(res.Error, "not found")
}

// ─── Counter consistency ─────────────────────────────────────────────────────

func (s *ServiceSuite) TestRecountRepairsCounterDrift() {
	j := s.jobPosting("UX Designer")
	for i, email := range []string{"a@email.com", "b@email.com", "c@email.com"} {
		c := s.candidate("Candidate "+string(rune('A'+i)), email)
		s.application(c.ID, j.ID)
	}

	// Simulate drift: the counter wanders away from the live rows.
	s.store.SeedApplicants(j.ID, 42)

	n, err := s.svc.Counters().Recount(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(3, n)

	// Idempotent: a second recount lands on the same value.
	n, err = s.svc.Counters().Recount(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(3, n)

	jAfter, err := s.svc.GetJobPosting(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(3, jAfter.Applicants)
}

func (s *ServiceSuite) TestDeleteDoesNotDecrementCounter() {
	c := s.candidate("David Kim", "david.kim@email.com")
	j := s.jobPosting("Data Engineer")
	a := s.application(c.ID, j.ID)

	s.Require().NoError(s.svc.DeleteApplication(s.ctx, s.auth, a.ID))

	// Preserved source asymmetry: the counter stays at 1 after the delete.
	jAfter, err := s.svc.GetJobPosting(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(1, jAfter.Applicants)

	// Recount is the sanctioned repair.
	n, err := s.svc.Counters().Recount(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(0, n)
}

func (s *ServiceSuite) TestDuplicateApplicationsAllowedAndCounted() {
	c := s.candidate("Lisa Nguyen", "lisa.nguyen@email.com")
	j := s.jobPosting("Backend Engineer")
	s.application(c.ID, j.ID)
	s.application(c.ID, j.ID)

	jAfter, err := s.svc.GetJobPosting(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(2, jAfter.Applicants)

	n, err := s.svc.Counters().Recount(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(2, n, "duplicate (candidate, job) rows each count")
}

// ─── Application lifecycle ───────────────────────────────────────────────────

func (s *ServiceSuite) TestApplicationLifecycle() {
	c := s.candidate("Sarah Chen", "sarah.chen@email.com")
	j := s.jobPosting("Senior Frontend Developer")
	s.Equal(0, j.Applicants)

	res := s.actions.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{
		CandidateID: c.ID, JobID: j.ID,
	})
	s.Require().True(res.Success)
	a := res.Data.(*model.Application)
	s.Equal("NEW", a.Status)
	s.False(a.AppliedDate.IsZero())

	jAfter, err := s.svc.GetJobPosting(s.ctx, j.ID)
	s.Require().NoError(err)
	s.Equal(1, jAfter.Applicants)

	res = s.actions.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "SHORTLISTED")
	s.Require().True(res.Success)
	s.Equal("SHORTLISTED", res.Data.(*model.Application).Status)
}

// ─── Board walk ──────────────────────────────────────────────────────────────

func (s *ServiceSuite) TestPipelineWalksToHiredAndStaysThere() {
	c := s.candidate("Alex Rodriguez", "alex.r@email.com")
	p, err := s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: c.ID, Position: "UX Designer",
	})
	s.Require().NoError(err)
	s.Equal("APPLIED", p.Stage)

	for _, want := range []string{"SCREENING", "INTERVIEW", "OFFER", "HIRED"} {
		p, err = s.svc.MovePipelineNext(s.ctx, s.auth, p.ID)
		s.Require().NoError(err)
		s.Equal(want, p.Stage)
	}

	// A fifth move is a no-op returning the same HIRED row.
	again, err := s.svc.MovePipelineNext(s.ctx, s.auth, p.ID)
	s.Require().NoError(err)
	s.Equal("HIRED", again.Stage)
	s.Equal(p.ID, again.ID)
}

func (s *ServiceSuite) TestPipelineStepBackAndDirectSet() {
	c := s.candidate("James Smith", "james.smith@email.com")
	p, err := s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: c.ID, Position: "Product Manager",
	})
	s.Require().NoError(err)

	// Step back at APPLIED is a no-op.
	p, err = s.svc.MovePipelinePrevious(s.ctx, s.auth, p.ID)
	s.Require().NoError(err)
	s.Equal("APPLIED", p.Stage)

	// Direct set may jump columns: any of the five values is legal.
	p, err = s.svc.UpdatePipelineStage(s.ctx, s.auth, p.ID, "OFFER")
	s.Require().NoError(err)
	s.Equal("OFFER", p.Stage)

	p, err = s.svc.MovePipelinePrevious(s.ctx, s.auth, p.ID)
	s.Require().NoError(err)
	s.Equal("INTERVIEW", p.Stage)
}

// ─── Interview rescheduling ──────────────────────────────────────────────────

func (s *ServiceSuite) TestCancelledInterviewCanBeRescheduledUnderBaseline() {
	c := s.candidate("Priya Patel", "priya.patel@email.com")
	i := s.interview(c.ID)
	s.Equal("SCHEDULED", i.Status)

	i, err := s.svc.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "CANCELLED")
	s.Require().NoError(err)
	s.Equal("CANCELLED", i.Status)

	// The baseline policy allows leaving CANCELLED. If this ever fails, a
	// hardened policy landed as the default — that must be a deliberate
	// decision, not drift.
	i, err = s.svc.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "SCHEDULED")
	s.Require().NoError(err)
	s.Equal("SCHEDULED", i.Status)
}

func (s *ServiceSuite) TestStrictPolicyBlocksLeavingTerminal() {
	log := logger.NewNop()
	strict := workflow.NewServiceWithPolicy(s.store, s.views, workflow.StrictPolicy{}, log)

	c := s.candidate("Strict Case", "strict@email.com")
	i, err := strict.CreateInterview(s.ctx, s.auth, workflow.InterviewInput{
		CandidateID: c.ID, Position: "QA Engineer", Date: "2026-09-12",
		Time: "10:00", Interviewer: "Sam Lee", Location: "Remote",
	})
	s.Require().NoError(err)

	_, err = strict.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "CANCELLED")
	s.Require().NoError(err)

	_, err = strict.UpdateInterviewStatus(s.ctx, s.auth, i.ID, "SCHEDULED")
	s.True(ierr.IsValidation(err), "strict policy must refuse to leave CANCELLED")
}

// ─── Validation and referential integrity ────────────────────────────────────

func (s *ServiceSuite) TestCreateRejectsMissingFieldsAndBadDates() {
	c := s.candidate("Val Case", "val@email.com")

	_, err := s.svc.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{JobID: "j1"})
	s.True(ierr.IsValidation(err))

	_, err = s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{CandidateID: c.ID, Position: "X"})
	s.True(ierr.IsValidation(err), "single-character position fails the min length")

	_, err = s.svc.CreateInterview(s.ctx, s.auth, workflow.InterviewInput{
		CandidateID: c.ID, Position: "UX Designer", Date: "next tuesday",
		Time: "14:00", Interviewer: "Dana Flores", Location: "Room 3B",
	})
	s.True(ierr.IsValidation(err), "unparseable date fails validation")

	_, err = s.svc.CreateOffer(s.ctx, s.auth, workflow.OfferInput{
		CandidateID: c.ID, Position: "UX Designer", Salary: "$1", StartDate: "10/01/2026",
	})
	s.True(ierr.IsValidation(err))
}

func (s *ServiceSuite) TestCreateRejectsDanglingReferences() {
	j := s.jobPosting("Ghost Hunter")

	_, err := s.svc.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{
		CandidateID: "no-such-candidate", JobID: j.ID,
	})
	s.True(ierr.IsReference(err))

	c := s.candidate("Real Person", "real@email.com")
	_, err = s.svc.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{
		CandidateID: c.ID, JobID: "no-such-job",
	})
	s.True(ierr.IsReference(err))

	_, err = s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: "no-such-candidate", Position: "UX Designer",
	})
	s.True(ierr.IsReference(err))
}

// An update must not repoint an application at a posting that does not
// exist; the job reference is checked the same way create checks it.
func (s *ServiceSuite) TestUpdateApplicationRejectsDanglingJob() {
	c := s.candidate("Moving Target", "moving@email.com")
	j := s.jobPosting("Security Engineer")
	a := s.application(c.ID, j.ID)

	_, err := s.svc.UpdateApplication(s.ctx, s.auth, a.ID, workflow.ApplicationInput{
		CandidateID: c.ID, JobID: "no-such-job",
	})
	s.True(ierr.IsReference(err))

	// The row is untouched.
	got, err := s.svc.GetApplication(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(j.ID, got.JobID)
}

func (s *ServiceSuite) TestDuplicateCandidateEmailRejected() {
	s.candidate("Sarah Chen", "sarah.chen@email.com")
	_, err := s.svc.CreateCandidate(s.ctx, s.auth, workflow.CreateCandidateInput{
		Name: "Sarah C.", Email: "sarah.chen@email.com",
	})
	s.True(ierr.IsValidation(err))
}

func (s *ServiceSuite) TestUpdatePreservesAppliedDateAndStatus() {
	c := s.candidate("Keep Fields", "keep@email.com")
	j := s.jobPosting("Platform Engineer")
	a := s.application(c.ID, j.ID)
	_, err := s.svc.UpdateApplicationStatus(s.ctx, s.auth, a.ID, "REVIEWING")
	s.Require().NoError(err)

	got, err := s.svc.UpdateApplication(s.ctx, s.auth, a.ID, workflow.ApplicationInput{
		CandidateID: c.ID, JobID: j.ID, Notes: "strong portfolio",
	})
	s.Require().NoError(err)
	s.Equal(a.AppliedDate, got.AppliedDate, "appliedDate is immutable")
	s.Equal("REVIEWING", got.Status, "update must not reset status")
	s.Require().NotNil(got.Notes)
	s.Equal("strong portfolio", *got.Notes)
}

// ─── Invalidation ────────────────────────────────────────────────────────────

func (s *ServiceSuite) TestApplicationCreateInvalidatesApplicationsAndPostings() {
	c := s.candidate("Paths Case", "paths@email.com")
	j := s.jobPosting("SRE")
	s.views.Reset()

	s.application(c.ID, j.ID)

	s.Equal(1, s.views.Count(workflow.PathApplications))
	s.Equal(1, s.views.Count(workflow.PathPostings), "counter change must refresh the postings view")
}

func (s *ServiceSuite) TestInvalidationFailureNeverFailsMutation() {
	c := s.candidate("Fire Forget", "fire@email.com")
	j := s.jobPosting("Firefighter")
	s.views.Fail = context.DeadlineExceeded

	res := s.actions.CreateApplication(s.ctx, s.auth, workflow.ApplicationInput{
		CandidateID: c.ID, JobID: j.ID,
	})
	s.True(res.Success, "invalidation failure must never fail the mutation")
}

func (s *ServiceSuite) TestCandidateDeletedCascadeInvalidatesDependents() {
	c := s.candidate("Leaving Soon", "leaving@email.com")
	s.views.Reset()

	s.svc.CandidateDeleted(s.ctx, s.auth, c.ID)

	for _, p := range []string{
		workflow.PathCandidates, workflow.PathApplications, workflow.PathPipeline,
		workflow.PathInterviews, workflow.PathOffers,
	} {
		s.Equal(1, s.views.Count(p), "path %s must be invalidated", p)
	}
}

// ─── Uniform result surface ──────────────────────────────────────────────────

func (s *ServiceSuite) TestActionsNeverLeakErrorsOnlyResults() {
	res := s.actions.UpdateApplicationStatus(s.ctx, s.auth, "missing", "NEW")
	s.False(res.Success)
	s.NotEmpty(res.Error)
	s.Nil(res.Data)

	res = s.actions.GetApplications(s.ctx)
	s.True(res.Success)
	s.Empty(res.Error)
}

// ─── Ordering contracts ──────────────────────────────────────────────────────

func (s *ServiceSuite) TestListOrderingContracts() {
	c := s.candidate("Zoe Adams", "zoe@email.com")
	s.candidate("Aaron Blake", "aaron@email.com")

	// Candidates list name-ascending.
	cs, err := s.svc.ListCandidates(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(cs, 2)
	s.Equal("Aaron Blake", cs[0].Name)

	// Interviews list schedule-ascending regardless of creation order.
	_, err = s.svc.CreateInterview(s.ctx, s.auth, workflow.InterviewInput{
		CandidateID: c.ID, Position: "UX Designer", Date: "2026-09-20",
		Time: "09:00", Interviewer: "Dana Flores", Location: "Room 1",
	})
	s.Require().NoError(err)
	_, err = s.svc.CreateInterview(s.ctx, s.auth, workflow.InterviewInput{
		CandidateID: c.ID, Position: "UX Designer", Date: "2026-09-05",
		Time: "09:00", Interviewer: "Dana Flores", Location: "Room 2",
	})
	s.Require().NoError(err)

	is, err := s.svc.ListInterviews(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(is, 2)
	s.True(is[0].Date.Before(is[1].Date))

	// Offers list newest-created first.
	s.offer(c.ID)
	second := s.offer(c.ID)
	os, err := s.svc.ListOffers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(os, 2)
	s.Equal(second.ID, os[0].ID)
}

// Position is a label, not a foreign key: a pipeline's position never has to
// match any posting title.
func (s *ServiceSuite) TestPositionTextIsDecoupledFromPostings() {
	c := s.candidate("Label Case", "label@email.com")
	s.jobPosting("Senior Frontend Developer")

	p, err := s.svc.CreatePipeline(s.ctx, s.auth, workflow.PipelineInput{
		CandidateID: c.ID, Position: "Chief Vibes Officer",
	})
	s.Require().NoError(err)
	s.Equal("Chief Vibes Officer", p.Position)
}
