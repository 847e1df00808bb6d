package workflow

import (
	"context"

	"talenthub/pipeline-service/internal/model"
)

// CreateInterview schedules an interview at SCHEDULED status.
func (s *Service) CreateInterview(ctx context.Context, auth AuthContext, in InterviewInput) (*model.Interview, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	i := &model.Interview{
		CandidateID: in.CandidateID,
		Position:    in.Position,
		Date:        date,
		Time:        in.Time,
		Interviewer: in.Interviewer,
		Location:    in.Location,
		Status:      InitialState(KindInterview),
		Notes:       optionalNotes(in.Notes),
	}
	if err := s.store.InsertInterview(ctx, i); err != nil {
		return nil, err
	}
	s.log.Infow("interview scheduled",
		"interviewId", i.ID, "candidateId", i.CandidateID, "actor", auth.ActorID)
	s.invalidate(ctx, PathInterviews)
	return i, nil
}

// UpdateInterview rewrites an interview's scheduling fields.
func (s *Service) UpdateInterview(ctx context.Context, auth AuthContext, id string, in InterviewInput) (*model.Interview, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	i, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	i.CandidateID = in.CandidateID
	i.Position = in.Position
	i.Date = date
	i.Time = in.Time
	i.Interviewer = in.Interviewer
	i.Location = in.Location
	i.Notes = optionalNotes(in.Notes)
	if err := s.store.UpdateInterview(ctx, i); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathInterviews)
	return i, nil
}

// UpdateInterviewStatus transitions an interview. COMPLETED and CANCELLED
// are terminal by intent only: the baseline policy allows leaving them, and
// the tests pin that down so hardening is a conscious break.
func (s *Service) UpdateInterviewStatus(ctx context.Context, auth AuthContext, id, status string) (*model.Interview, error) {
	status = NormalizeState(status)
	i, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.decide(KindInterview, i.Status, status)
	if err != nil {
		return nil, err
	}

	i.Status = status
	if err := s.store.UpdateInterview(ctx, i); err != nil {
		return nil, err
	}
	if d.Verdict == Allow {
		s.log.Infow("interview status changed",
			"interviewId", id, "to", status, "actor", auth.ActorID)
	}
	s.invalidate(ctx, PathInterviews)
	return i, nil
}

// DeleteInterview removes an interview row.
func (s *Service) DeleteInterview(ctx context.Context, auth AuthContext, id string) error {
	if err := s.store.DeleteInterview(ctx, id); err != nil {
		return err
	}
	s.log.Infow("interview deleted", "interviewId", id, "actor", auth.ActorID)
	s.invalidate(ctx, PathInterviews)
	return nil
}

// GetInterview returns one interview by id.
func (s *Service) GetInterview(ctx context.Context, id string) (*model.Interview, error) {
	return s.store.GetInterview(ctx, id)
}

// ListInterviews returns all interviews, scheduled date ascending.
func (s *Service) ListInterviews(ctx context.Context) ([]model.Interview, error) {
	return s.store.ListInterviews(ctx)
}
