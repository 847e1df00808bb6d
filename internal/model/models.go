// Package model defines the shared data structures for the pipeline service.
//
// All five workflow entities carry the same envelope — id, candidateId,
// status or stage, createdAt, updatedAt — plus their domain fields. Rows are
// owned by the store; the service re-reads before every decision and never
// caches entity state across calls.
package model

import "time"

// Candidate is the anchor identity every workflow entity hangs off.
// Email is unique. Contact fields may change; id and creation never do.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobPosting mirrors the job_postings table row.
// Applicants is a derived counter kept in step with live Application rows by
// the counter reconciler; Status is informational and carries no FSM.
type JobPosting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Applicants  int       `json:"applicants"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Application links one Candidate to one JobPosting.
// AppliedDate is set at creation and never changes afterwards.
type Application struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	JobID       string    `json:"jobId"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Pipeline places a Candidate on the five-column hiring board.
// Position is a free-text label, deliberately not a JobPosting foreign key.
type Pipeline struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Position    string    `json:"position"`
	Stage       string    `json:"stage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Interview is a scheduled meeting with a Candidate.
type Interview struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Position    string    `json:"position"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Interviewer string    `json:"interviewer"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Offer is a formal offer extended to a Candidate.
type Offer struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Position    string    `json:"position"`
	Salary      string    `json:"salary"`
	StartDate   time.Time `json:"startDate"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
