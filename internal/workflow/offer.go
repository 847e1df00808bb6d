package workflow

import (
	"context"

	"talenthub/pipeline-service/internal/model"
)

// CreateOffer drafts an offer at DRAFT status.
func (s *Service) CreateOffer(ctx context.Context, auth AuthContext, in OfferInput) (*model.Offer, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	o := &model.Offer{
		CandidateID: in.CandidateID,
		Position:    in.Position,
		Salary:      in.Salary,
		StartDate:   start,
		Status:      InitialState(KindOffer),
		Notes:       optionalNotes(in.Notes),
	}
	if err := s.store.InsertOffer(ctx, o); err != nil {
		return nil, err
	}
	s.log.Infow("offer created",
		"offerId", o.ID, "candidateId", o.CandidateID, "actor", auth.ActorID)
	s.invalidate(ctx, PathOffers)
	return o, nil
}

// UpdateOffer rewrites an offer's terms.
func (s *Service) UpdateOffer(ctx context.Context, auth AuthContext, id string, in OfferInput) (*model.Offer, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	o, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	o.CandidateID = in.CandidateID
	o.Position = in.Position
	o.Salary = in.Salary
	o.StartDate = start
	o.Notes = optionalNotes(in.Notes)
	if err := s.store.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	s.invalidate(ctx, PathOffers)
	return o, nil
}

// UpdateOfferStatus transitions an offer. ACCEPTED and REJECTED are terminal
// by intent only under the baseline policy.
func (s *Service) UpdateOfferStatus(ctx context.Context, auth AuthContext, id, status string) (*model.Offer, error) {
	status = NormalizeState(status)
	o, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.decide(KindOffer, o.Status, status)
	if err != nil {
		return nil, err
	}

	o.Status = status
	if err := s.store.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	if d.Verdict == Allow {
		s.log.Infow("offer status changed", "offerId", id, "to", status, "actor", auth.ActorID)
	}
	s.invalidate(ctx, PathOffers)
	return o, nil
}

// DeleteOffer removes an offer row.
func (s *Service) DeleteOffer(ctx context.Context, auth AuthContext, id string) error {
	if err := s.store.DeleteOffer(ctx, id); err != nil {
		return err
	}
	s.log.Infow("offer deleted", "offerId", id, "actor", auth.ActorID)
	s.invalidate(ctx, PathOffers)
	return nil
}

// GetOffer returns one offer by id.
func (s *Service) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	return s.store.GetOffer(ctx, id)
}

// ListOffers returns all offers, newest first.
func (s *Service) ListOffers(ctx context.Context) ([]model.Offer, error) {
	return s.store.ListOffers(ctx)
}
