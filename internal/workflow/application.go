package workflow

import (
	"context"
	"time"

	"talenthub/pipeline-service/internal/model"
)

// CreateApplication files a candidate's application against a posting.
// The row starts at NEW with appliedDate fixed to now, and the posting's
// applicants counter is bumped by one. Duplicate (candidate, job) pairs are
// allowed: each files as its own row and counts separately.
func (s *Service) CreateApplication(ctx context.Context, auth AuthContext, in ApplicationInput) (*model.Application, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}
	if err := s.requireJobPosting(ctx, in.JobID); err != nil {
		return nil, err
	}

	a := &model.Application{
		CandidateID: in.CandidateID,
		JobID:       in.JobID,
		Status:      InitialState(KindApplication),
		AppliedDate: time.Now().UTC(),
		Notes:       optionalNotes(in.Notes),
	}
	if err := s.store.InsertApplication(ctx, a); err != nil {
		return nil, err
	}

	if err := s.counters.OnApplicationCreated(ctx, in.JobID); err != nil {
		// The counter is derived state; Recount repairs drift.
		s.log.Warnw("applicants counter increment failed", "jobId", in.JobID, "err", err)
	}

	s.log.Infow("application created",
		"applicationId", a.ID, "candidateId", a.CandidateID, "jobId", a.JobID, "actor", auth.ActorID)
	s.invalidate(ctx, PathApplications, PathPostings)
	return a, nil
}

// UpdateApplication rewrites an application's mutable fields. Status and
// appliedDate are not part of the input: status moves only through
// UpdateApplicationStatus, appliedDate never moves.
func (s *Service) UpdateApplication(ctx context.Context, auth AuthContext, id string, in ApplicationInput) (*model.Application, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	a, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}
	if err := s.requireJobPosting(ctx, in.JobID); err != nil {
		return nil, err
	}

	a.CandidateID = in.CandidateID
	a.JobID = in.JobID
	a.Notes = optionalNotes(in.Notes)
	if err := s.store.UpdateApplication(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathApplications)
	return a, nil
}

// UpdateApplicationStatus transitions an application between review states.
// A same-status call is a no-op that still refreshes updatedAt.
func (s *Service) UpdateApplicationStatus(ctx context.Context, auth AuthContext, id, status string) (*model.Application, error) {
	status = NormalizeState(status)
	a, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.decide(KindApplication, a.Status, status)
	if err != nil {
		return nil, err
	}

	a.Status = status
	if err := s.store.UpdateApplication(ctx, a); err != nil {
		return nil, err
	}
	if d.Verdict == Allow {
		s.log.Infow("application status changed",
			"applicationId", id, "to", status, "actor", auth.ActorID)
	}
	s.invalidate(ctx, PathApplications)
	return a, nil
}

// DeleteApplication removes an application row. The posting's applicants
// counter is deliberately NOT decremented — the source system never did —
// so the counter drifts high until Recount repairs it.
func (s *Service) DeleteApplication(ctx context.Context, auth AuthContext, id string) error {
	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return err
	}
	s.log.Infow("application deleted", "applicationId", id, "actor", auth.ActorID)
	s.invalidate(ctx, PathApplications, PathPostings)
	return nil
}

// GetApplication returns one application by id.
func (s *Service) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	return s.store.GetApplication(ctx, id)
}

// ListApplications returns all applications, newest first.
func (s *Service) ListApplications(ctx context.Context) ([]model.Application, error) {
	return s.store.ListApplications(ctx)
}
