package workflow

import (
	"time"

	"github.com/go-playground/validator/v10"

	ierr "talenthub/pipeline-service/internal/errors"
)

// dateLayout is the wire format for date-only fields (appliedDate is set by
// the service itself; interview dates and offer start dates arrive as
// strings from forms).
const dateLayout = "2006-01-02"

// CreateCandidateInput carries the fields needed to register a candidate.
type CreateCandidateInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// JobPostingInput is shared by job posting create and update.
type JobPostingInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Department  string `json:"department" validate:"required,max=50"`
	Location    string `json:"location" validate:"required,max=100"`
	Salary      string `json:"salary" validate:"required,max=50"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ApplicationInput is shared by application create and update. AppliedDate
// is never part of the input — it is fixed at creation.
type ApplicationInput struct {
	CandidateID string `json:"candidateId" validate:"required"`
	JobID       string `json:"jobId" validate:"required"`
	Notes       string `json:"notes"`
}

// PipelineInput is shared by pipeline create and update.
type PipelineInput struct {
	CandidateID string `json:"candidateId" validate:"required"`
	Position    string `json:"position" validate:"required,min=2"`
}

// InterviewInput is shared by interview create and update.
type InterviewInput struct {
	CandidateID string `json:"candidateId" validate:"required"`
	Position    string `json:"position" validate:"required,min=2"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Interviewer string `json:"interviewer" validate:"required,min=2"`
	Location    string `json:"location" validate:"required,min=2"`
	Notes       string `json:"notes"`
}

// OfferInput is shared by offer create and update.
type OfferInput struct {
	CandidateID string `json:"candidateId" validate:"required"`
	Position    string `json:"position" validate:"required,min=2"`
	Salary      string `json:"salary" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	Notes       string `json:"notes"`
}

// checkInput runs struct-tag validation and maps the first failure to a
// user-readable validation error.
func checkInput(v *validator.Validate, in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if ierr.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return ierr.Validation("field %q fails %q constraint", fe.Field(), fe.Tag())
	}
	return ierr.Validation("invalid input")
}

// parseDate parses a date-only string, mapping failure to a validation error.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ierr.Validation("field %q must be a date in %s form, got %q", field, dateLayout, value)
	}
	return t, nil
}

// optionalNotes converts an empty notes field to a NULL-able pointer.
func optionalNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
