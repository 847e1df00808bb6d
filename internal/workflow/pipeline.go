package workflow

import (
	"context"

	"talenthub/pipeline-service/internal/model"
)

// CreatePipeline places a candidate on the board at APPLIED. Position is a
// free-text label; no consistency with any JobPosting title is enforced.
func (s *Service) CreatePipeline(ctx context.Context, auth AuthContext, in PipelineInput) (*model.Pipeline, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	p := &model.Pipeline{
		CandidateID: in.CandidateID,
		Position:    in.Position,
		Stage:       InitialState(KindPipeline),
	}
	if err := s.store.InsertPipeline(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infow("pipeline created",
		"pipelineId", p.ID, "candidateId", p.CandidateID, "actor", auth.ActorID)
	s.invalidate(ctx, PathPipeline)
	return p, nil
}

// UpdatePipeline rewrites the pipeline's descriptive fields. Stage moves
// only through UpdatePipelineStage and the next/previous helpers.
func (s *Service) UpdatePipeline(ctx context.Context, auth AuthContext, id string, in PipelineInput) (*model.Pipeline, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	p, err := s.store.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	p.CandidateID = in.CandidateID
	p.Position = in.Position
	if err := s.store.UpdatePipeline(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathPipeline)
	return p, nil
}

// UpdatePipelineStage sets the stage directly. Any of the five values is a
// legal target; the ordered helpers below are conveniences on top of the
// same policy.
func (s *Service) UpdatePipelineStage(ctx context.Context, auth AuthContext, id, stage string) (*model.Pipeline, error) {
	stage = NormalizeState(stage)
	p, err := s.store.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.decide(KindPipeline, p.Stage, stage)
	if err != nil {
		return nil, err
	}

	p.Stage = stage
	if err := s.store.UpdatePipeline(ctx, p); err != nil {
		return nil, err
	}
	if d.Verdict == Allow {
		s.log.Infow("pipeline stage changed",
			"pipelineId", id, "to", stage, "actor", auth.ActorID)
	}
	s.invalidate(ctx, PathPipeline)
	return p, nil
}

// MovePipelineNext advances the pipeline one column. At HIRED there is no
// next column: the call is a no-op that still refreshes updatedAt.
func (s *Service) MovePipelineNext(ctx context.Context, auth AuthContext, id string) (*model.Pipeline, error) {
	p, err := s.store.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}
	target := NextStage(Stage(p.Stage))
	if target == "" {
		target = Stage(p.Stage)
	}
	return s.UpdatePipelineStage(ctx, auth, id, string(target))
}

// MovePipelinePrevious steps the pipeline one column back. At APPLIED the
// call is a no-op that still refreshes updatedAt.
func (s *Service) MovePipelinePrevious(ctx context.Context, auth AuthContext, id string) (*model.Pipeline, error) {
	p, err := s.store.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}
	target := PreviousStage(Stage(p.Stage))
	if target == "" {
		target = Stage(p.Stage)
	}
	return s.UpdatePipelineStage(ctx, auth, id, string(target))
}

// DeletePipeline removes a board row.
func (s *Service) DeletePipeline(ctx context.Context, auth AuthContext, id string) error {
	if err := s.store.DeletePipeline(ctx, id); err != nil {
		return err
	}
	s.log.Infow("pipeline deleted", "pipelineId", id, "actor", auth.ActorID)
	s.invalidate(ctx, PathPipeline)
	return nil
}

// GetPipeline returns one pipeline row by id.
func (s *Service) GetPipeline(ctx context.Context, id string) (*model.Pipeline, error) {
	return s.store.GetPipeline(ctx, id)
}

// ListPipelines returns all pipeline rows, newest first.
func (s *Service) ListPipelines(ctx context.Context) ([]model.Pipeline, error) {
	return s.store.ListPipelines(ctx)
}

// PipelineBoard returns the kanban view: rows partitioned per stage, each
// column most-recently-created first.
func (s *Service) PipelineBoard(ctx context.Context) (Board, error) {
	rows, err := s.store.ListPipelines(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByStage(rows), nil
}
