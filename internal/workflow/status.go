// Package workflow is the hiring-pipeline state engine: the status and stage
// state machines keyed off a shared Candidate identity, and the mutation layer
// that applies transitions, validates them, and propagates side effects.
//
// Status graphs (baseline policy — every same-enum move is legal):
//
//	Application: NEW ⇄ REVIEWING ⇄ SHORTLISTED ⇄ REJECTED
//	Interview:   SCHEDULED ⇄ COMPLETED ⇄ CANCELLED
//	Offer:       DRAFT ⇄ SENT ⇄ ACCEPTED ⇄ REJECTED
//
//	Pipeline:    APPLIED ──► SCREENING ──► INTERVIEW ──► OFFER ──► HIRED
//	             (ordered; next/previous helpers move one column at a time,
//	              direct set accepts any of the five)
//
// REJECTED, COMPLETED/CANCELLED, ACCEPTED/REJECTED and HIRED are terminal by
// workflow intent only; the permissive default policy does not guard them.
// Swap in StrictPolicy to enforce the terminals.
package workflow

import (
	"fmt"
	"strings"
)

// Kind names an entity family with its own state enum.
type Kind string

const (
	KindApplication Kind = "application"
	KindPipeline    Kind = "pipeline"
	KindInterview   Kind = "interview"
	KindOffer       Kind = "offer"
	KindJobPosting  Kind = "job_posting"
	KindCandidate   Kind = "candidate"
)

// Application status values mirror the application_status enum.
type ApplicationStatus string

const (
	ApplicationNew         ApplicationStatus = "NEW"
	ApplicationReviewing   ApplicationStatus = "REVIEWING"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

// Stage values mirror the pipeline_stage enum. Order matters; see stage.go.
type Stage string

const (
	StageApplied   Stage = "APPLIED"
	StageScreening Stage = "SCREENING"
	StageInterview Stage = "INTERVIEW"
	StageOffer     Stage = "OFFER"
	StageHired     Stage = "HIRED"
)

// Interview status values mirror the interview_status enum.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
)

// Offer status values mirror the offer_status enum.
type OfferStatus string

const (
	OfferDraft    OfferStatus = "DRAFT"
	OfferSent     OfferStatus = "SENT"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferRejected OfferStatus = "REJECTED"
)

// JobPosting status values. No FSM — the value is informational.
type JobStatus string

const (
	JobDraft  JobStatus = "DRAFT"
	JobActive JobStatus = "ACTIVE"
	JobClosed JobStatus = "CLOSED"
)

// statesByKind is the single source of truth for enum membership per kind.
var statesByKind = map[Kind][]string{
	KindApplication: {
		string(ApplicationNew), string(ApplicationReviewing),
		string(ApplicationShortlisted), string(ApplicationRejected),
	},
	KindPipeline: {
		string(StageApplied), string(StageScreening), string(StageInterview),
		string(StageOffer), string(StageHired),
	},
	KindInterview: {
		string(InterviewScheduled), string(InterviewCompleted), string(InterviewCancelled),
	},
	KindOffer: {
		string(OfferDraft), string(OfferSent), string(OfferAccepted), string(OfferRejected),
	},
	KindJobPosting: {
		string(JobDraft), string(JobActive), string(JobClosed),
	},
}

// terminalByKind documents the workflow-intent terminals. Only StrictPolicy
// consults it; the baseline policy ignores terminals entirely.
var terminalByKind = map[Kind][]string{
	KindApplication: {string(ApplicationRejected)},
	KindPipeline:    {string(StageHired)},
	KindInterview:   {string(InterviewCompleted), string(InterviewCancelled)},
	KindOffer:       {string(OfferAccepted), string(OfferRejected)},
}

// initialByKind is the default status/stage assigned at creation.
var initialByKind = map[Kind]string{
	KindApplication: string(ApplicationNew),
	KindPipeline:    string(StageApplied),
	KindInterview:   string(InterviewScheduled),
	KindOffer:       string(OfferDraft),
}

// InitialState returns the status or stage a freshly created row receives.
func InitialState(kind Kind) string { return initialByKind[kind] }

// NormalizeState uppercases a raw status or stage value. Mutation input
// arrives from forms in any case; enum members are all uppercase.
func NormalizeState(value string) string { return strings.ToUpper(value) }

// IsValidState reports whether value is a member of kind's enum.
// Comparison is case-sensitive; the mutation paths run raw input through
// NormalizeState before asking.
func IsValidState(kind Kind, value string) bool {
	for _, s := range statesByKind[kind] {
		if s == value {
			return true
		}
	}
	return false
}

// IsTerminal reports whether value is a terminal state of kind's workflow.
func IsTerminal(kind Kind, value string) bool {
	for _, s := range terminalByKind[kind] {
		if s == value {
			return true
		}
	}
	return false
}

// ParseState validates a raw string against kind's enum, returning an error
// for unknown values.
func ParseState(kind Kind, value string) (string, error) {
	if !IsValidState(kind, value) {
		return "", fmt.Errorf("unknown %s state %q", kind, value)
	}
	return value, nil
}

// ParseStage converts a raw string to a Stage, returning an error for
// unknown values.
func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	switch st {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired:
		return st, nil
	}
	return "", fmt.Errorf("unknown pipeline stage %q", s)
}

// IsHired returns true when stage is HIRED (the end of the board).
func IsHired(s Stage) bool { return s == StageHired }
